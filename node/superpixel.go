package node

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/crw/tensor"
)

// RegionWeights builds, for one (batch, time) frame, the weight matrix that
// ties every output spatial cell of a feature map to every superpixel
// region: W[cell, s] = |cell's receptive field ∩ region s| / |region s|.
//
// The receptive field of output cell (i, j) is the (h/outH)×(w/outW) pixel
// block it was pooled from, so the cells tile the frame exactly and, for a
// region fully inside the frame, the weights of its column sum to 1.
// Columns past the frame's region count stay all-zero (padding).
//
// Returns the (outH·outW)×maxSP weight matrix and the number of distinct
// regions actually present.
//
// Complexity: O(h·w + regions) time, O(outH·outW·maxSP) memory.
//
// Errors:
//   - ErrShapeMismatch — outH/outW do not evenly divide the mask frame.
//   - ErrTooManySuperpixels — the frame names more regions than maxSP.
func RegionWeights(mask *tensor.Mask, b, t, outH, outW, maxSP int) (*mat.Dense, int, error) {
	if mask == nil || maxSP <= 0 {
		return nil, 0, ErrShapeMismatch
	}
	_, _, h, w := mask.Dims()
	if outH <= 0 || outW <= 0 || h%outH != 0 || w%outW != 0 {
		return nil, 0, ErrShapeMismatch
	}
	cellH, cellW := h/outH, w/outW

	// Discover the distinct labels of this frame in ascending order.
	seen := make(map[int]bool)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v, err := mask.At(b, t, y, x)
			if err != nil {
				return nil, 0, err
			}
			seen[v] = true
		}
	}
	labels := make([]int, 0, len(seen))
	for v := range seen {
		labels = append(labels, v)
	}
	sort.Ints(labels)
	if len(labels) > maxSP {
		return nil, 0, ErrTooManySuperpixels
	}
	index := make(map[int]int, len(labels))
	for s, v := range labels {
		index[v] = s
	}

	// Per-cell overlap counts and per-region areas in one pass.
	weights := mat.NewDense(outH*outW, maxSP, nil)
	area := make([]float64, len(labels))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v, _ := mask.At(b, t, y, x)
			s := index[v]
			cell := (y/cellH)*outW + x/cellW
			weights.Set(cell, s, weights.At(cell, s)+1)
			area[s]++
		}
	}
	// Normalize each region column by the region's area.
	for s, a := range area {
		for cell := 0; cell < outH*outW; cell++ {
			weights.Set(cell, s, weights.At(cell, s)/a)
		}
	}
	return weights, len(labels), nil
}

// SuperpixelsToNodes — whole-frame video + label masks → superpixel node embeddings.
//
// Algorithm Outline:
//  1. Encode the frame batch (batch, 3, time, h, w) into feature maps
//     (batch, hidden, time, H, W); optionally apply feature dropout.
//  2. Per (batch, time): build the receptive-field weight matrix via
//     RegionWeights and compute the weighted average of the feature map per
//     region — feats = Wᵀ · cells, one row per region, padded with zero rows
//     up to maxSP so all batch items share one node-count dimension.
//  3. Project through the head and L2-normalize the channel axis. Padded
//     regions stay all-zero through an identity head and normalization.
//
// All per-region buffers are pre-allocated at their final maxSP size and
// written by position; nothing grows incrementally.
//
// Returns the embedding sequence (batch, channel, time, maxSP) and the raw
// feature-map volume.
//
// Complexity: one encoder pass + O(B·T·(h·w + H·W·maxSP·hidden)).
//
// Errors: ErrNilEncoder, ErrNilHead, ErrShapeMismatch, ErrTooManySuperpixels.
func SuperpixelsToNodes(enc Encoder, head *Head, video *tensor.Volume, mask *tensor.Mask, maxSP int, opts *Options) (*tensor.Seq, *tensor.Volume, error) {
	if enc == nil {
		return nil, nil, ErrNilEncoder
	}
	if head == nil {
		return nil, nil, ErrNilHead
	}
	if video == nil || mask == nil || maxSP <= 0 {
		return nil, nil, ErrShapeMismatch
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := o.validate(); err != nil {
		return nil, nil, err
	}

	batch, _, steps, _, _ := video.Dims()
	maskBatch, maskSteps, _, _ := mask.Dims()
	if maskBatch != batch || maskSteps != steps {
		return nil, nil, ErrShapeMismatch
	}

	maps, err := enc.Forward(video)
	if err != nil {
		return nil, nil, err
	}
	outItems, hid, outSteps, height, width := maps.Dims()
	if outItems != batch || outSteps != steps {
		return nil, nil, ErrShapeMismatch
	}

	featureDropout(maps, &o)

	seq, err := tensor.NewSeq(batch, head.OutDim(), steps, maxSP)
	if err != nil {
		return nil, nil, err
	}
	cellCount := height * width
	for b := 0; b < batch; b++ {
		for t := 0; t < steps; t++ {
			weights, _, err := RegionWeights(mask, b, t, height, width, maxSP)
			if err != nil {
				return nil, nil, err
			}
			// Cell-feature matrix: one row per output cell.
			cells := mat.NewDense(cellCount, hid, nil)
			for h := 0; h < height; h++ {
				for w := 0; w < width; w++ {
					for c := 0; c < hid; c++ {
						v, _ := maps.At(b, c, t, h, w)
						cells.Set(h*width+w, c, v)
					}
				}
			}
			// Weighted average per region: feats[s] = Σ_cell W[cell,s]·cells[cell].
			feats := mat.NewDense(maxSP, hid, nil)
			feats.Mul(weights.T(), cells)

			embedded, err := head.Apply(feats)
			if err != nil {
				return nil, nil, err
			}
			if err = seq.SetNodeMatrix(b, t, embedded); err != nil {
				return nil, nil, err
			}
		}
	}
	seq.NormalizeChannels()
	return seq, maps, nil
}
