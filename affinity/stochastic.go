package affinity

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// StochMat — affinity → stochastic (transition) matrix.
//
// Algorithm Outline:
//  1. If zeroDiag, zero the diagonal of A (requires square A).
//  2. If doDropout and Options.EdgeDropRate > 0, corrupt entries
//     independently: with probability EdgeDropRate, replace the entry with
//     a large negative sentinel so the edge vanishes under normalization.
//  3. If doSinkhorn, return SinkhornKnopp(exp(A/τ)) — approximately doubly
//     stochastic within Options.SinkhornTol, capped at SinkhornMaxIter.
//  4. Otherwise apply a temperature softmax along each row, turning every
//     row into a probability distribution over destination nodes.
//
// With EdgeDropRate = 0 steps 2 draws no randomness and the result is the
// plain temperature softmax of the input, fully deterministic.
//
// Complexity:
//
//	Time = O(N·M) softmax mode, O(iters·N·M) Sinkhorn mode.
//
// Errors:
//   - ErrNilMatrix, ErrNotSquare — shape violations.
//   - ErrBadTemperature, ErrBadDropRate, ErrBadSinkhorn, ErrNilRand — bad options.
func StochMat(a *mat.Dense, zeroDiag, doDropout, doSinkhorn bool, opts *Options) (*mat.Dense, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := o.validate(doDropout); err != nil {
		return nil, err
	}

	var err error
	if zeroDiag {
		if a, err = ZeroDiagonal(a); err != nil {
			return nil, err
		}
	} else {
		a = mat.DenseCopyOf(a)
	}

	if doDropout && o.EdgeDropRate > 0 {
		dropEdges(a, o.EdgeDropRate, &o)
	}

	if doSinkhorn {
		return SinkhornKnopp(expScaled(a, o.Temperature), o.SinkhornTol, o.SinkhornMaxIter)
	}

	softmaxRows(a, o.Temperature)
	return a, nil
}

// dropEdges overwrites each entry with dropSentinel with probability rate,
// in place. Randomness is drawn fresh per invocation from Options.Rand.
func dropEdges(a *mat.Dense, rate float64, o *Options) {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if o.Rand.Float64() < rate {
				a.Set(i, j, dropSentinel)
			}
		}
	}
}

// expScaled returns exp(A/τ) as a fresh matrix.
func expScaled(a *mat.Dense, temp float64) *mat.Dense {
	r, c := a.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, math.Exp(a.At(i, j)/temp))
		}
	}
	return out
}

// softmaxRows applies a numerically stable temperature softmax along each
// row of A in place: subtract the row maximum before exponentiation so that
// sentinel-corrupted entries underflow to exactly 0.
func softmaxRows(a *mat.Dense, temp float64) {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		max := math.Inf(-1)
		for j := 0; j < c; j++ {
			if v := a.At(i, j) / temp; v > max {
				max = v
			}
		}
		sum := 0.0
		for j := 0; j < c; j++ {
			e := math.Exp(a.At(i, j)/temp - max)
			a.Set(i, j, e)
			sum += e
		}
		for j := 0; j < c; j++ {
			a.Set(i, j, a.At(i, j)/sum)
		}
	}
}
