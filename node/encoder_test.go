package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/crw/node"
	"github.com/katalvlaran/crw/tensor"
)

// stubEncoder is a deterministic backbone for tests: it downscales the
// spatial grid by scale and fills each output cell with
// value(item, channel) + cellBias·cellIndex.
type stubEncoder struct {
	hid      int
	scale    int
	cellBias float64
}

func (e *stubEncoder) Forward(clips *tensor.Volume) (*tensor.Volume, error) {
	items, _, steps, h, w := clips.Dims()
	out, err := tensor.NewVolume(items, e.hid, steps, h/e.scale, w/e.scale)
	if err != nil {
		return nil, err
	}
	_, _, _, oh, ow := out.Dims()
	for i := 0; i < items; i++ {
		for c := 0; c < e.hid; c++ {
			for t := 0; t < steps; t++ {
				for y := 0; y < oh; y++ {
					for x := 0; x < ow; x++ {
						v := float64((i+1)*(c+1)) + e.cellBias*float64(y*ow+x)
						if err := out.Set(i, c, t, y, x, v); err != nil {
							return nil, err
						}
					}
				}
			}
		}
	}
	return out, nil
}

// TestProbe verifies hidden-dimension and map-scale discovery from the
// fixed-size dummy input.
func TestProbe(t *testing.T) {
	dims, err := node.Probe(&stubEncoder{hid: 4, scale: 8})
	assert.NoError(t, err)
	assert.Equal(t, 4, dims.HidDim)
	assert.Equal(t, 8, dims.MapScale, "256-pixel probe at 32-cell output means scale 8")
}

// TestProbe_NilEncoder verifies the precondition guard.
func TestProbe_NilEncoder(t *testing.T) {
	_, err := node.Probe(nil)
	assert.ErrorIs(t, err, node.ErrNilEncoder)
}
