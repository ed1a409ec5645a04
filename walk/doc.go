// Package walk chains per-step transition matrices into multi-step walks
// through time and scores them against their targets.
//
// What:
//
//   - Palindromes — for each length i, compose the sequence A12[0..i]
//     followed by A21[i..0] into one transition matrix: the probability of
//     returning to the starting node after walking out i steps and back.
//     Both composition conventions are computed — right (post-multiply each
//     new step) and left (pre-multiply) — and a flip flag selects which
//     walk is kept.
//   - SinkhornWalks — the alternative target mode: compose only forward
//     transitions, and pair each length with a pseudo-label target taken
//     from the row-wise argmax of an independently composed
//     doubly-stochastic walk.
//   - Evaluate — per-walk cross-entropy of log(A+ε) rows against target
//     indices plus top-1 accuracy diagnostics, aggregated into one scalar.
//
// Why:
//
//   - A palindrome walk that concentrates on the identity correspondence is
//     exactly the "return to origin" training signal: every node should
//     come back to itself.
//
// Edge cases:
//
//   - Fewer than three time steps produce no palindrome walks; Evaluate of
//     an empty walk set is defined as zero loss.
//   - Single-node sequences degrade to 1×1 matrices whose only entry is 1.
//
// Errors:
//
//   - ErrLengthMismatch — forward and backward step lists disagree.
//   - ErrNilStep — a nil transition matrix inside a step list.
//   - ErrBadTarget — a target's length disagrees with its distribution.
package walk
