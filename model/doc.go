// Package model assembles the full correspondence learner: an injected
// encoder, the embedding head, the affinity → stochastic-matrix → walk →
// loss pipeline, and a per-instance cache of identity targets.
//
// What:
//
//   - Model — one configured learner instance. Construction probes the
//     encoder once for its hidden dimension and map scale, builds the head,
//     and fixes the input regime (patches, whole frames, or superpixels)
//     so no code path is ever inferred from array shape at call time.
//   - Forward — the single entry point: a video batch in, either
//     (embeddings, feature maps) in embeddings-only mode or
//     (embeddings, scalar loss, diagnostics) in training mode.
//   - An optional visualization hook fires with a small fixed probability
//     per training forward, receiving a frame-pair round-trip summary;
//     nothing it sees feeds back into training.
//
// Why:
//
//   - Everything below this package is stateless and per-call; the model
//     owns the only long-lived state — the identity-target cache, keyed by
//     (device, batch, node count) — and its configuration.
//
// Concurrency:
//
//   - Forward is safe to call from concurrent goroutines as far as the
//     target cache is concerned (mutex-guarded, idempotent population).
//     The shared *rand.Rand is the caller's to serialize if reproducible
//     corruption across concurrent forwards matters.
//
// Errors:
//
//   - ErrNilEncoder — constructed without an encoder.
//   - ErrRegimeMismatch — the supplied inputs disagree with the configured
//     regime (e.g. a superpixel mask in patch mode, or vice versa).
//   - ErrBadClip — a clip batch whose channel axis does not factor into
//     whole patches.
package model
