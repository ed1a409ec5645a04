// Package affinity turns node embeddings into transition probabilities:
// pairwise dot-product affinity matrices between two time steps, and their
// normalization into row-stochastic (temperature softmax) or approximately
// doubly-stochastic (Sinkhorn–Knopp) transition matrices.
//
// What:
//
//   - Pair computes the full pairwise dot-product matrix between two node
//     sets; Consecutive does so for every adjacent pair of time steps of an
//     embedding sequence.
//   - ZeroDiagonal masks self-affinities of a square affinity matrix.
//   - StochMat converts an affinity matrix into a transition matrix, with
//     optional diagonal masking, edge dropout and Sinkhorn normalization.
//   - SinkhornKnopp performs the alternating row/column rescaling itself.
//
// Why:
//
//   - A row-stochastic matrix is a per-node probability distribution over
//     destination nodes — the single step of a random walk through time.
//   - Edge dropout regularizes the walk by randomly removing graph edges
//     before normalization; a large negative sentinel keeps the removal
//     effective under the subsequent softmax.
//   - The doubly-stochastic mode balances mass in both directions, which the
//     Sinkhorn-target training mode needs.
//
// Complexity:
//
//   - Pair: O(N·M·C) via one dense product.
//   - StochMat (softmax mode): O(N·M).
//   - SinkhornKnopp: O(iters·N·M), iters bounded by MaxIter.
//
// Options (Options, defaults from DefaultOptions):
//
//   - Temperature — softmax sharpness, must be > 0 (default 0.07).
//   - EdgeDropRate — per-entry removal probability in [0,1) (default 0).
//   - Rand — randomness source; required whenever EdgeDropRate > 0.
//   - SinkhornTol / SinkhornMaxIter — convergence tolerance (default 0.01)
//     and hard iteration cap (default 100). Hitting the cap is not an
//     error: the partially converged matrix is returned silently.
//
// Errors:
//
//   - ErrNilMatrix — a nil matrix was supplied.
//   - ErrNotSquare — diagonal masking requested on a non-square matrix.
//   - ErrShapeMismatch — the two node sets disagree on channel width.
//   - ErrBadTemperature, ErrBadDropRate, ErrBadSinkhorn — invalid options.
//   - ErrNilRand — EdgeDropRate > 0 with no randomness source.
package affinity
