package walk_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/crw/affinity"
	"github.com/katalvlaran/crw/tensor"
	"github.com/katalvlaran/crw/walk"
)

// TestPipeline_ThreeFramesFourNodes runs the whole walk machinery on a
// synthetic 1-batch, 3-step, 4-node unit-norm embedding sequence with zero
// dropout and palindrome targets, and checks the single emitted walk against
// an independent from-scratch computation of the composed transition matrix
// and its cross-entropy.
func TestPipeline_ThreeFramesFourNodes(t *testing.T) {
	// Four orthonormal embeddings, rotated one position per time step, so
	// every per-step transition is sharply diagonal-ish under softmax.
	q, err := tensor.NewSeq(1, 4, 3, 4)
	assert.NoError(t, err)
	for step := 0; step < 3; step++ {
		for n := 0; n < 4; n++ {
			assert.NoError(t, q.Set(0, (n+step)%4, step, n, 1.0))
		}
	}

	affs, err := affinity.Consecutive(q)
	assert.NoError(t, err)
	assert.Len(t, affs, 2)

	opts := affinity.DefaultOptions()
	a12s := make([][]*mat.Dense, 2)
	a21s := make([][]*mat.Dense, 2)
	for step := 0; step < 2; step++ {
		fwd, err := affinity.StochMat(affs[step][0], false, true, false, &opts)
		assert.NoError(t, err)
		at, err := affinity.Transpose(affs[step][0])
		assert.NoError(t, err)
		bwd, err := affinity.StochMat(at, false, true, false, &opts)
		assert.NoError(t, err)
		a12s[step] = []*mat.Dense{fwd}
		a21s[step] = []*mat.Dense{bwd}
	}

	walks, err := walk.Palindromes(a12s, a21s, false, identity)
	assert.NoError(t, err)
	assert.Len(t, walks, 1, "T=3 yields exactly the length-1 walk")
	assert.Equal(t, "cyc r1", walks[0].Name)
	assert.Equal(t, []int{0, 1, 2, 3}, walks[0].Target)

	// Independent reference: softmax rows of the affinities, composed by
	// naive multiplication, scored by naive cross-entropy.
	ref := refCompose(affs)
	assert.True(t, mat.EqualApprox(ref, walks[0].Dist[0], 1e-10))

	loss, diags, err := walk.Evaluate(walks, "4")
	assert.NoError(t, err)
	assert.InDelta(t, refXent(ref, []int{0, 1, 2, 3}), loss, 1e-10)
	assert.Contains(t, diags, "4 xent cyc r1")
	assert.Contains(t, diags, "4 acc cyc r1")
}

// refCompose re-derives the length-1 palindrome from raw affinities with
// plain loops: softmax(A0)·softmax(A1)·softmax(A1ᵀ)·softmax(A0ᵀ).
func refCompose(affs [][]*mat.Dense) *mat.Dense {
	s := func(a *mat.Dense) *mat.Dense {
		r, c := a.Dims()
		out := mat.NewDense(r, c, nil)
		for i := 0; i < r; i++ {
			sum := 0.0
			for j := 0; j < c; j++ {
				sum += math.Exp(a.At(i, j) / affinity.DefaultTemperature)
			}
			for j := 0; j < c; j++ {
				out.Set(i, j, math.Exp(a.At(i, j)/affinity.DefaultTemperature)/sum)
			}
		}
		return out
	}
	tr := func(a *mat.Dense) *mat.Dense {
		r, c := a.Dims()
		out := mat.NewDense(c, r, nil)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				out.Set(j, i, a.At(i, j))
			}
		}
		return out
	}
	return mul(mul(mul(s(affs[0][0]), s(affs[1][0])), s(tr(affs[1][0]))), s(tr(affs[0][0])))
}

// refXent re-derives the mean cross-entropy of log(A+ε) rows with plain loops.
func refXent(a *mat.Dense, target []int) float64 {
	r, c := a.Dims()
	total := 0.0
	for i := 0; i < r; i++ {
		sum := 0.0
		for j := 0; j < c; j++ {
			sum += a.At(i, j) + 1e-20
		}
		total += math.Log(sum) - math.Log(a.At(i, target[i])+1e-20)
	}
	return total / float64(r)
}
