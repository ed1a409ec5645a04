package node

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/crw/tensor"
)

// PatchesToNodes — clip batch → node embeddings, patch and whole-frame regimes.
//
// Algorithm Outline:
//  1. Validate that the clip batch factors as batch·nodes items and encode it.
//  2. Optionally corrupt the feature maps with feature dropout.
//  3. nodes > 1 (patch regime): mean-pool each item's feature map spatially
//     to one vector per node.
//     nodes == 1 (whole-frame regime): every output spatial cell becomes a
//     node of its frame; height and width collapse to 1 afterward.
//  4. Project each (batch, time) node matrix through the head and
//     L2-normalize the channel axis.
//
// Returns the embedding sequence (batch, channel, time, node) and the
// per-node feature maps (batch, node, channel, time, H, W). Only the
// sequence participates in walk computation.
//
// Complexity: one encoder pass + O(B·N·C·T·H·W).
//
// Errors: ErrNilEncoder, ErrNilHead, ErrShapeMismatch, option errors.
func PatchesToNodes(enc Encoder, head *Head, clips *tensor.Volume, batch, nodes int, opts *Options) (*tensor.Seq, *tensor.Maps, error) {
	if enc == nil {
		return nil, nil, ErrNilEncoder
	}
	if head == nil {
		return nil, nil, ErrNilHead
	}
	if clips == nil {
		return nil, nil, ErrShapeMismatch
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := o.validate(); err != nil {
		return nil, nil, err
	}

	items, _, steps, _, _ := clips.Dims()
	if batch <= 0 || nodes <= 0 || items != batch*nodes {
		return nil, nil, ErrShapeMismatch
	}

	maps, err := enc.Forward(clips)
	if err != nil {
		return nil, nil, err
	}
	outItems, hid, outSteps, height, width := maps.Dims()
	if outItems != items || outSteps != steps {
		return nil, nil, ErrShapeMismatch
	}

	featureDropout(maps, &o)

	if nodes == 1 {
		return flattenFrames(head, maps, batch, hid, steps, height, width)
	}
	return poolPatches(head, maps, batch, nodes, hid, steps, height, width)
}

// poolPatches mean-pools each item's feature map spatially and assembles the
// embedding sequence for the patch regime.
func poolPatches(head *Head, maps *tensor.Volume, batch, nodes, hid, steps, height, width int) (*tensor.Seq, *tensor.Maps, error) {
	stack, err := tensor.MapsFromVolume(maps, batch, nodes)
	if err != nil {
		return nil, nil, err
	}

	seq, err := tensor.NewSeq(batch, head.OutDim(), steps, nodes)
	if err != nil {
		return nil, nil, err
	}
	area := float64(height * width)
	for b := 0; b < batch; b++ {
		for t := 0; t < steps; t++ {
			pooled := mat.NewDense(nodes, hid, nil)
			for n := 0; n < nodes; n++ {
				item := b*nodes + n
				for c := 0; c < hid; c++ {
					sum := 0.0
					for h := 0; h < height; h++ {
						for w := 0; w < width; w++ {
							v, _ := maps.At(item, c, t, h, w)
							sum += v
						}
					}
					pooled.Set(n, c, sum/area)
				}
			}
			embedded, err := head.Apply(pooled)
			if err != nil {
				return nil, nil, err
			}
			if err = seq.SetNodeMatrix(b, t, embedded); err != nil {
				return nil, nil, err
			}
		}
	}
	seq.NormalizeChannels()
	return seq, stack, nil
}

// flattenFrames implements the whole-frame regime: the spatial grid itself
// becomes the node axis, one node per output cell, H and W forced to 1.
func flattenFrames(head *Head, maps *tensor.Volume, batch, hid, steps, height, width int) (*tensor.Seq, *tensor.Maps, error) {
	nodes := height * width
	stack, err := tensor.NewMaps(batch, nodes, hid, steps, 1, 1)
	if err != nil {
		return nil, nil, err
	}

	seq, err := tensor.NewSeq(batch, head.OutDim(), steps, nodes)
	if err != nil {
		return nil, nil, err
	}
	for b := 0; b < batch; b++ {
		for t := 0; t < steps; t++ {
			cells := mat.NewDense(nodes, hid, nil)
			for h := 0; h < height; h++ {
				for w := 0; w < width; w++ {
					n := h*width + w
					for c := 0; c < hid; c++ {
						v, _ := maps.At(b, c, t, h, w)
						cells.Set(n, c, v)
						if err = stack.Set(b, n, c, t, 0, 0, v); err != nil {
							return nil, nil, err
						}
					}
				}
			}
			embedded, err := head.Apply(cells)
			if err != nil {
				return nil, nil, err
			}
			if err = seq.SetNodeMatrix(b, t, embedded); err != nil {
				return nil, nil, err
			}
		}
	}
	seq.NormalizeChannels()
	return seq, stack, nil
}

// featureDropout zeroes each feature-map element with probability
// o.FeatDropRate and rescales the survivors by 1/(1−rate), in place.
// Randomness comes from o.Rand, fresh per invocation.
func featureDropout(v *tensor.Volume, o *Options) {
	if o.FeatDropRate <= 0 {
		return
	}
	items, channels, steps, height, width := v.Dims()
	for i := 0; i < items; i++ {
		for c := 0; c < channels; c++ {
			for t := 0; t < steps; t++ {
				for h := 0; h < height; h++ {
					for w := 0; w < width; w++ {
						if o.Rand.Float64() < o.FeatDropRate {
							_ = v.Set(i, c, t, h, w, 0)
						}
					}
				}
			}
		}
	}
	v.Scale(1 / (1 - o.FeatDropRate))
}
