package walk

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/crw/affinity"
)

// Sinkhorn settings for the pseudo-label target pass. Deliberately tighter
// and shorter than the per-step normalization: the target only needs a
// sharp argmax, not a fully converged matrix.
const (
	skTargetTol     = 0.001
	skTargetMaxIter = 10
)

// Palindromes — forward-then-backward walk composition.
//
// Algorithm Outline:
//
//	Given per-step forward transitions a12s[t][b] and backward transitions
//	a21s[t][b] (t = 0..T−2), build for each walk length i = 1..T−2 the
//	palindrome step sequence
//
//	    A12[0], A12[1], …, A12[i], A21[i], …, A21[0]
//
//	and fold it into a single transition matrix by repeated multiplication.
//	Both conventions are carried while folding: the right walk post-multiplies
//	each new step onto the running product, the left walk pre-multiplies.
//	flip selects which one is kept — labels "cyc l<i>" / "cyc r<i>".
//
//	Each kept walk is paired with targets(batch, N) and emitted in
//	increasing-length order. Fewer than two steps yield no walks.
//
// Complexity:
//
//	Time = O(B·T²·N³) over all lengths, Memory = O(B·T·N²).
//
// Errors: ErrLengthMismatch, ErrNilStep.
func Palindromes(a12s, a21s [][]*mat.Dense, flip bool, targets TargetFunc) ([]Walk, error) {
	if len(a12s) != len(a21s) {
		return nil, ErrLengthMismatch
	}
	b12, err := checkSteps(a12s)
	if err != nil {
		return nil, err
	}
	b21, err := checkSteps(a21s)
	if err != nil {
		return nil, err
	}
	if b12 != b21 {
		return nil, ErrLengthMismatch
	}
	if len(a12s) == 0 {
		return nil, nil
	}

	walks := make([]Walk, 0, len(a12s)-1)
	for i := 1; i < len(a12s); i++ {
		batch := len(a12s[i])
		dist := make([]*mat.Dense, batch)
		nodes := 0
		for b := 0; b < batch; b++ {
			// Palindrome step sequence for this length.
			steps := make([]*mat.Dense, 0, 2*(i+1))
			for f := 0; f <= i; f++ {
				steps = append(steps, a12s[f][b])
			}
			for r := i; r >= 0; r-- {
				steps = append(steps, a21s[r][b])
			}

			right := steps[0]
			left := steps[0]
			for _, step := range steps[1:] {
				r, _ := right.Dims()
				_, c := step.Dims()
				nr := mat.NewDense(r, c, nil)
				nr.Mul(right, step)
				lr, _ := step.Dims()
				_, lc := left.Dims()
				nl := mat.NewDense(lr, lc, nil)
				nl.Mul(step, left)
				right, left = nr, nl
			}
			if flip {
				dist[b] = left
			} else {
				dist[b] = right
			}
			nodes, _ = dist[b].Dims()
		}

		name := fmt.Sprintf("cyc r%d", i)
		if flip {
			name = fmt.Sprintf("cyc l%d", i)
		}
		walks = append(walks, Walk{Name: name, Dist: dist, Target: targets(batch, nodes)})
	}
	return walks, nil
}

// SinkhornWalks — forward-only walks with self-generated pseudo-label targets.
//
// Algorithm Outline:
//
//	Mutually exclusive with Palindromes. Per batch item, fold the forward
//	transitions a12s into a cumulative walk a12, and independently fold a
//	cumulative doubly-stochastic walk at, each step of which is the
//	Sinkhorn-normalized affinity (dropout off) pre-multiplied onto the
//	running product. At each length i ≥ 1, the target is the row-wise
//	argmax of SinkhornKnopp(at, 0.001, 10), flattened over (batch, node) —
//	a self-generated label instead of the fixed identity.
//
//	The target pass is pure bookkeeping on detached values; nothing feeds
//	back into the composed distributions.
//
// Emitted labels: "sk 1", "sk 2", … in increasing-length order.
//
// Errors: ErrLengthMismatch, ErrNilStep, plus affinity option errors.
func SinkhornWalks(a12s, affinities [][]*mat.Dense, opts *affinity.Options) ([]Walk, error) {
	if len(a12s) != len(affinities) {
		return nil, ErrLengthMismatch
	}
	b12, err := checkSteps(a12s)
	if err != nil {
		return nil, err
	}
	bAff, err := checkSteps(affinities)
	if err != nil {
		return nil, err
	}
	if b12 != bAff {
		return nil, ErrLengthMismatch
	}
	if len(a12s) == 0 {
		return nil, nil
	}

	batch := len(a12s[0])
	cum := make([]*mat.Dense, batch)    // cumulative forward walks
	double := make([]*mat.Dense, batch) // cumulative doubly-stochastic walks
	for b := 0; b < batch; b++ {
		cum[b] = mat.DenseCopyOf(a12s[0][b])
		at, err := affinity.StochMat(affinities[0][b], false, false, true, opts)
		if err != nil {
			return nil, err
		}
		double[b] = at
	}

	walks := make([]Walk, 0, len(a12s)-1)
	for i := 1; i < len(a12s); i++ {
		target := make([]int, 0, batch)
		dist := make([]*mat.Dense, batch)
		for b := 0; b < batch; b++ {
			r, _ := cum[b].Dims()
			_, c := a12s[i][b].Dims()
			next := mat.NewDense(r, c, nil)
			next.Mul(cum[b], a12s[i][b])
			cum[b] = next
			dist[b] = mat.DenseCopyOf(next)

			step, err := affinity.StochMat(affinities[i][b], false, false, true, opts)
			if err != nil {
				return nil, err
			}
			sr, _ := step.Dims()
			_, dc := double[b].Dims()
			nd := mat.NewDense(sr, dc, nil)
			nd.Mul(step, double[b])
			double[b] = nd

			sharpened, err := affinity.SinkhornKnopp(double[b], skTargetTol, skTargetMaxIter)
			if err != nil {
				return nil, err
			}
			target = append(target, argmaxRows(sharpened)...)
		}
		walks = append(walks, Walk{Name: fmt.Sprintf("sk %d", i), Dist: dist, Target: target})
	}
	return walks, nil
}

// checkSteps rejects nil matrices and ragged batch lists in a step list,
// and reports the common batch extent (0 for an empty list).
func checkSteps(steps [][]*mat.Dense) (int, error) {
	batch := 0
	for t, items := range steps {
		if t == 0 {
			batch = len(items)
		} else if len(items) != batch {
			return 0, ErrLengthMismatch
		}
		for _, m := range items {
			if m == nil {
				return 0, ErrNilStep
			}
		}
	}
	return batch, nil
}

// argmaxRows returns the column index of the maximum entry of every row.
func argmaxRows(a *mat.Dense) []int {
	r, c := a.Dims()
	out := make([]int, r)
	for i := 0; i < r; i++ {
		best, idx := a.At(i, 0), 0
		for j := 1; j < c; j++ {
			if v := a.At(i, j); v > best {
				best, idx = v, j
			}
		}
		out[i] = idx
	}
	return out
}
