package node

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// headOutDim is the embedding width produced by any head of positive depth.
const headOutDim = 128

// linear is one fully-connected layer: Y = X·W + b.
type linear struct {
	w *mat.Dense // in×out weight matrix
	b []float64  // out-sized bias
}

// Head projects pooled node features into the embedding space: a stack of
// linear layers with ReLU activations between them and none after the last.
// Depth 0 is the identity mapping — features pass through untouched.
type Head struct {
	layers []linear
	outDim int
}

// NewHead builds an embedding head of the given depth over features of width
// hidDim. Depth 0 yields the identity. Positive depth d yields d linear
// layers: hidDim→hidDim repeated d−1 times, then hidDim→128, ReLU between
// layers only. Weights are drawn U(−1/√fanin, 1/√fanin) from rng, biases
// start at zero.
//
// Errors:
//   - ErrBadDepth — depth < 0.
//   - ErrNilRand  — depth > 0 with rng == nil.
func NewHead(hidDim, depth int, rng *rand.Rand) (*Head, error) {
	if depth < 0 {
		return nil, ErrBadDepth
	}
	if hidDim <= 0 {
		return nil, ErrShapeMismatch
	}
	if depth == 0 {
		return &Head{outDim: hidDim}, nil
	}
	if rng == nil {
		return nil, ErrNilRand
	}

	dims := make([]int, 0, depth+1)
	for i := 0; i < depth; i++ {
		dims = append(dims, hidDim)
	}
	dims = append(dims, headOutDim)

	layers := make([]linear, 0, depth)
	for i := 0; i+1 < len(dims); i++ {
		layers = append(layers, newLinear(dims[i], dims[i+1], rng))
	}
	return &Head{layers: layers, outDim: headOutDim}, nil
}

// newLinear initializes an in×out layer with U(−1/√in, 1/√in) weights.
func newLinear(in, out int, rng *rand.Rand) linear {
	bound := 1.0 / math.Sqrt(float64(in))
	w := mat.NewDense(in, out, nil)
	for i := 0; i < in; i++ {
		for j := 0; j < out; j++ {
			w.Set(i, j, -bound+2*bound*rng.Float64())
		}
	}
	return linear{w: w, b: make([]float64, out)}
}

// OutDim reports the channel width of the head's output.
func (h *Head) OutDim() int {
	return h.outDim
}

// Apply maps an N×in feature matrix (one row per node) through the stack.
// Depth 0 returns the input unchanged.
//
// Complexity: O(depth·N·in·out).
func (h *Head) Apply(x *mat.Dense) (*mat.Dense, error) {
	if x == nil {
		return nil, ErrShapeMismatch
	}
	out := x
	for li, l := range h.layers {
		in, _ := l.w.Dims()
		_, cols := out.Dims()
		if cols != in {
			return nil, ErrShapeMismatch
		}
		n, _ := out.Dims()
		_, width := l.w.Dims()
		next := mat.NewDense(n, width, nil)
		next.Mul(out, l.w)
		for i := 0; i < n; i++ {
			for j := 0; j < width; j++ {
				v := next.At(i, j) + l.b[j]
				// ReLU between layers; the final layer stays linear.
				if li+1 < len(h.layers) && v < 0 {
					v = 0
				}
				next.Set(i, j, v)
			}
		}
		out = next
	}
	return out, nil
}
