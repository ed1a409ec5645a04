package affinity_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/crw/affinity"
)

// naiveSoftmax is an independent reference: softmax(a/temp) per row.
func naiveSoftmax(a *mat.Dense, temp float64) *mat.Dense {
	r, c := a.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		sum := 0.0
		for j := 0; j < c; j++ {
			sum += math.Exp(a.At(i, j) / temp)
		}
		for j := 0; j < c; j++ {
			out.Set(i, j, math.Exp(a.At(i, j)/temp)/sum)
		}
	}
	return out
}

// TestStochMat_RowsSumToOne verifies the row-stochastic invariant in default
// mode within 1e-5.
func TestStochMat_RowsSumToOne(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{0.2, -1.3, 4, 0, 0, 0, 2.5, 2.5, -7})
	out, err := affinity.StochMat(a, false, false, false, nil)
	assert.NoError(t, err)

	for i := 0; i < 3; i++ {
		sum := 0.0
		for j := 0; j < 3; j++ {
			sum += out.At(i, j)
			assert.GreaterOrEqual(t, out.At(i, j), 0.0)
		}
		assert.InDelta(t, 1.0, sum, 1e-5, "row %d must sum to 1", i)
	}
}

// TestStochMat_ZeroDropoutIsPlainSoftmax verifies that with edge-dropout
// rate 0 the result is deterministic and equals the plain temperature
// softmax of the input.
func TestStochMat_ZeroDropoutIsPlainSoftmax(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 0.5, -0.25, 2})
	opts := affinity.DefaultOptions()

	out, err := affinity.StochMat(a, false, true, false, &opts)
	assert.NoError(t, err)
	want := naiveSoftmax(a, opts.Temperature)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, want.At(i, j), out.At(i, j), 1e-12)
		}
	}

	// A second call must reproduce the first exactly.
	again, err := affinity.StochMat(a, false, true, false, &opts)
	assert.NoError(t, err)
	assert.True(t, mat.Equal(out, again), "zero dropout must be deterministic")
}

// TestStochMat_EdgeDropoutSuppresses verifies that with rate near 1 every
// surviving distribution is still a valid row and corrupted edges carry no
// mass.
func TestStochMat_EdgeDropoutSuppresses(t *testing.T) {
	opts := affinity.DefaultOptions()
	opts.EdgeDropRate = 0.5
	opts.Rand = rand.New(rand.NewSource(42))

	a := mat.NewDense(4, 4, nil)
	out, err := affinity.StochMat(a, false, true, false, &opts)
	assert.NoError(t, err)
	for i := 0; i < 4; i++ {
		sum := 0.0
		for j := 0; j < 4; j++ {
			sum += out.At(i, j)
		}
		assert.InDelta(t, 1.0, sum, 1e-5, "rows stay stochastic under dropout")
	}
}

// TestStochMat_ZeroDiagonal verifies that diagonal masking happens before
// normalization, so recomputing the affinity shows exact zeros there.
func TestStochMat_ZeroDiagonal(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{5, 1, 1, 5})
	masked, err := affinity.ZeroDiagonal(a)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, masked.At(0, 0), "masked value removed before normalization")
	assert.Equal(t, 0.0, masked.At(1, 1))

	out, err := affinity.StochMat(a, true, false, false, nil)
	assert.NoError(t, err)
	want := naiveSoftmax(masked, affinity.DefaultTemperature)
	assert.InDelta(t, want.At(0, 0), out.At(0, 0), 1e-12)
	assert.InDelta(t, want.At(0, 1), out.At(0, 1), 1e-12)
}

// TestStochMat_SingleNode verifies the 1×1 degenerate case: the only
// possible destination gets probability exactly 1.
func TestStochMat_SingleNode(t *testing.T) {
	a := mat.NewDense(1, 1, []float64{-3.7})
	out, err := affinity.StochMat(a, false, false, false, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, out.At(0, 0))
}

// TestStochMat_OptionErrors covers option validation.
func TestStochMat_OptionErrors(t *testing.T) {
	a := mat.NewDense(2, 2, nil)

	bad := affinity.DefaultOptions()
	bad.Temperature = 0
	_, err := affinity.StochMat(a, false, false, false, &bad)
	assert.ErrorIs(t, err, affinity.ErrBadTemperature)

	bad = affinity.DefaultOptions()
	bad.EdgeDropRate = 1.5
	_, err = affinity.StochMat(a, false, true, false, &bad)
	assert.ErrorIs(t, err, affinity.ErrBadDropRate)

	bad = affinity.DefaultOptions()
	bad.EdgeDropRate = 0.3 // no Rand supplied
	_, err = affinity.StochMat(a, false, true, false, &bad)
	assert.ErrorIs(t, err, affinity.ErrNilRand)

	_, err = affinity.StochMat(nil, false, false, false, nil)
	assert.ErrorIs(t, err, affinity.ErrNilMatrix)
}
