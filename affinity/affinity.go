package affinity

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/crw/tensor"
)

// Pair — pairwise affinity between two node sets.
//
// Description:
//
//	Given x1 (N×C) and x2 (M×C), both rows assumed unit-normalized by the
//	node extractor, Pair returns the N×M matrix of unnormalized similarity
//	scores A[n,m] = ⟨x1[n], x2[m]⟩. This is a pure bilinear form: no
//	normalization, no masking. The result is not symmetric in general —
//	rows index the source time step's nodes, columns the target's.
//
// Complexity:
//
//	Time = O(N·M·C), Memory = O(N·M).
//
// Errors:
//   - ErrNilMatrix      — either input is nil.
//   - ErrShapeMismatch  — the inputs disagree on channel width.
func Pair(x1, x2 *mat.Dense) (*mat.Dense, error) {
	if x1 == nil || x2 == nil {
		return nil, ErrNilMatrix
	}
	n, c1 := x1.Dims()
	m, c2 := x2.Dims()
	if c1 != c2 {
		return nil, ErrShapeMismatch
	}
	out := mat.NewDense(n, m, nil)
	out.Mul(x1, x2.T())
	return out, nil
}

// Consecutive computes the affinity matrix for every adjacent pair of time
// steps of an embedding sequence: out[t][b] = Pair(nodes(b,t), nodes(b,t+1))
// for t = 0..T−2. The sequence must span at least two time steps.
//
// Complexity: O(B·(T−1)·N²·C) time, O(B·(T−1)·N²) memory.
func Consecutive(q *tensor.Seq) ([][]*mat.Dense, error) {
	if q == nil {
		return nil, ErrNilMatrix
	}
	batch, _, steps, _ := q.Dims()
	if steps < 2 {
		return nil, ErrShapeMismatch
	}

	out := make([][]*mat.Dense, steps-1)
	for t := 0; t < steps-1; t++ {
		out[t] = make([]*mat.Dense, batch)
		for b := 0; b < batch; b++ {
			x1, err := q.NodeMatrix(b, t)
			if err != nil {
				return nil, err
			}
			x2, err := q.NodeMatrix(b, t+1)
			if err != nil {
				return nil, err
			}
			a, err := Pair(x1, x2)
			if err != nil {
				return nil, err
			}
			out[t][b] = a
		}
	}
	return out, nil
}

// ZeroDiagonal returns a copy of square A with its diagonal zeroed, i.e.
// A multiplied element-wise by a mask that is 1 off-diagonal and 0 on it.
// Used when self-affinity must be excluded before normalization.
//
// Complexity: O(N²).
func ZeroDiagonal(a *mat.Dense) (*mat.Dense, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}
	r, c := a.Dims()
	if r != c {
		return nil, ErrNotSquare
	}
	out := mat.DenseCopyOf(a)
	for i := 0; i < r; i++ {
		out.Set(i, i, 0)
	}
	return out, nil
}

// Transpose returns Aᵀ as a fresh dense matrix; the backward transition of a
// time-step pair is built from the transposed affinity.
//
// Complexity: O(N·M).
func Transpose(a *mat.Dense) (*mat.Dense, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}
	r, c := a.Dims()
	out := mat.NewDense(c, r, nil)
	out.Copy(a.T())
	return out, nil
}
