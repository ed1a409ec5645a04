package affinity

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SinkhornKnopp — iterative doubly-stochastic normalization.
//
// Description:
//
//	Alternately rescales the rows and then the columns of a non-negative
//	matrix K so that both row sums and column sums approach 1. Stops as
//	soon as the maximum deviation of any row or column sum from 1 drops
//	below tol, or after maxIter sweeps — whichever triggers first.
//
// Non-convergence within the cap is NOT an error: the partially converged
// matrix is returned silently. The cap guarantees termination.
//
// Complexity:
//
//	Time = O(iters·N·M), Memory = O(N·M).
//
// Errors:
//   - ErrNilMatrix  — nil input.
//   - ErrBadSinkhorn — tol ≤ 0 or maxIter ≤ 0.
func SinkhornKnopp(k *mat.Dense, tol float64, maxIter int) (*mat.Dense, error) {
	if k == nil {
		return nil, ErrNilMatrix
	}
	if tol <= 0 || maxIter <= 0 {
		return nil, ErrBadSinkhorn
	}

	out := mat.DenseCopyOf(k)
	r, c := out.Dims()

	for iter := 0; iter < maxIter; iter++ {
		// Row sweep: divide each row by its sum.
		for i := 0; i < r; i++ {
			sum := 0.0
			for j := 0; j < c; j++ {
				sum += out.At(i, j)
			}
			if sum != 0 {
				for j := 0; j < c; j++ {
					out.Set(i, j, out.At(i, j)/sum)
				}
			}
		}
		// Column sweep: divide each column by its sum.
		for j := 0; j < c; j++ {
			sum := 0.0
			for i := 0; i < r; i++ {
				sum += out.At(i, j)
			}
			if sum != 0 {
				for i := 0; i < r; i++ {
					out.Set(i, j, out.At(i, j)/sum)
				}
			}
		}
		if maxDeviation(out) < tol {
			break
		}
	}
	return out, nil
}

// maxDeviation reports the largest |sum − 1| over all row and column sums.
func maxDeviation(a *mat.Dense) float64 {
	r, c := a.Dims()
	dev := 0.0
	for i := 0; i < r; i++ {
		sum := 0.0
		for j := 0; j < c; j++ {
			sum += a.At(i, j)
		}
		dev = math.Max(dev, math.Abs(sum-1))
	}
	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += a.At(i, j)
		}
		dev = math.Max(dev, math.Abs(sum-1))
	}
	return dev
}
