package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/crw/tensor"
)

// TestVolume_GroupChannels verifies that a B×(G·c)×T×H×W batch regroups into
// (B·G)×c×T×H×W with channel groups becoming items.
func TestVolume_GroupChannels(t *testing.T) {
	v, err := tensor.NewVolume(2, 6, 1, 2, 2)
	assert.NoError(t, err)
	// Tag every element with its (item, channel) pair.
	for i := 0; i < 2; i++ {
		for c := 0; c < 6; c++ {
			for h := 0; h < 2; h++ {
				for w := 0; w < 2; w++ {
					assert.NoError(t, v.Set(i, c, 0, h, w, float64(100*i+10*c)))
				}
			}
		}
	}

	out, err := v.GroupChannels(2)
	assert.NoError(t, err)
	items, channels, steps, height, width := out.Dims()
	assert.Equal(t, []int{4, 3, 1, 2, 2}, []int{items, channels, steps, height, width})

	// Item (i=1, group=1) channel 2 was originally item 1, channel 1*3+2=5.
	got, err := out.At(3, 2, 0, 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, float64(100*1+10*5), got)

	_, err = v.GroupChannels(4)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch, "6 channels cannot split into 4 groups")
}

// TestMapsFromVolume verifies the (B·N)→(B,N) regrouping and its shape guard.
func TestMapsFromVolume(t *testing.T) {
	v, err := tensor.NewVolume(6, 2, 1, 1, 1)
	assert.NoError(t, err)
	assert.NoError(t, v.Set(5, 1, 0, 0, 0, 9.0))

	m, err := tensor.MapsFromVolume(v, 2, 3)
	assert.NoError(t, err)
	got, err := m.At(1, 2, 1, 0, 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, 9.0, got, "item 5 is (batch 1, node 2)")

	_, err = tensor.MapsFromVolume(v, 2, 2)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch, "6 items do not factor as 2·2")
}

// TestMask_AtSet verifies label storage and bounds checking.
func TestMask_AtSet(t *testing.T) {
	m, err := tensor.NewMask(1, 2, 4, 4)
	assert.NoError(t, err)
	assert.NoError(t, m.Set(0, 1, 3, 2, 7))

	v, err := m.At(0, 1, 3, 2)
	assert.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = m.At(0, 2, 0, 0)
	assert.ErrorIs(t, err, tensor.ErrIndexOutOfBounds)
}
