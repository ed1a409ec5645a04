package node_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/crw/node"
)

// TestNewHead_DepthZeroIsIdentity verifies that depth 0 passes features
// through untouched and keeps the input width.
func TestNewHead_DepthZeroIsIdentity(t *testing.T) {
	h, err := node.NewHead(6, 0, nil)
	assert.NoError(t, err)
	assert.Equal(t, 6, h.OutDim())

	x := mat.NewDense(3, 6, []float64{
		1, 2, 3, 4, 5, 6,
		-1, -2, -3, -4, -5, -6,
		0, 0, 0, 0, 0, 0,
	})
	y, err := h.Apply(x)
	assert.NoError(t, err)
	assert.True(t, mat.Equal(x, y), "identity head must not change features")
}

// TestNewHead_PositiveDepth verifies layer shapes: depth d projects hid→128
// through d linear layers, deterministically for a fixed seed.
func TestNewHead_PositiveDepth(t *testing.T) {
	h, err := node.NewHead(16, 2, rand.New(rand.NewSource(3)))
	assert.NoError(t, err)
	assert.Equal(t, 128, h.OutDim())

	x := mat.NewDense(5, 16, nil)
	for i := 0; i < 5; i++ {
		for j := 0; j < 16; j++ {
			x.Set(i, j, float64(i-j)*0.25)
		}
	}
	y1, err := h.Apply(x)
	assert.NoError(t, err)
	r, c := y1.Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 128, c)

	y2, err := h.Apply(x)
	assert.NoError(t, err)
	assert.True(t, mat.Equal(y1, y2), "a built head is a fixed function")
}

// TestNewHead_Errors covers depth and randomness preconditions.
func TestNewHead_Errors(t *testing.T) {
	_, err := node.NewHead(8, -1, nil)
	assert.ErrorIs(t, err, node.ErrBadDepth)

	_, err = node.NewHead(8, 1, nil)
	assert.ErrorIs(t, err, node.ErrNilRand, "positive depth needs weight initialization randomness")

	_, err = node.NewHead(0, 0, nil)
	assert.ErrorIs(t, err, node.ErrShapeMismatch)
}

// TestHead_ApplyShapeGuard verifies the width check between input and stack.
func TestHead_ApplyShapeGuard(t *testing.T) {
	h, err := node.NewHead(16, 1, rand.New(rand.NewSource(1)))
	assert.NoError(t, err)

	_, err = h.Apply(mat.NewDense(2, 8, nil))
	assert.ErrorIs(t, err, node.ErrShapeMismatch)
}
