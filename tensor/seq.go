package tensor

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Seq is a node embedding sequence: a 4-D float64 array indexed
// (batch, channel, time, node) and stored row-major in a single flat slice.
//
// A Seq is produced once per forward pass by the node extractor and consumed
// read-only by the affinity stage. After NormalizeChannels the channel
// dimension carries unit L2 norm per (batch, time, node).
type Seq struct {
	b, c, t, n int       // batch, channel, time and node extents
	data       []float64 // flat backing storage, length == b*c*t*n
}

// NewSeq creates a B×C×T×N embedding sequence initialized to zeros.
// Stage 1 (Validate): ensure all extents > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Stage 3 (Finalize): return new Seq or ErrInvalidDimensions.
// Complexity: O(B·C·T·N) time and memory.
func NewSeq(batch, channels, steps, nodes int) (*Seq, error) {
	if batch <= 0 || channels <= 0 || steps <= 0 || nodes <= 0 {
		return nil, tensorErrorf("NewSeq", ErrInvalidDimensions)
	}
	return &Seq{
		b:    batch,
		c:    channels,
		t:    steps,
		n:    nodes,
		data: make([]float64, batch*channels*steps*nodes),
	}, nil
}

// Dims returns the (batch, channel, time, node) extents.
// Complexity: O(1).
func (s *Seq) Dims() (batch, channels, steps, nodes int) {
	return s.b, s.c, s.t, s.n
}

// indexOf computes the flat index for (b,c,t,n) or returns ErrIndexOutOfBounds.
func (s *Seq) indexOf(b, c, t, n int) (int, error) {
	if b < 0 || b >= s.b || c < 0 || c >= s.c || t < 0 || t >= s.t || n < 0 || n >= s.n {
		return 0, tensorErrorf("Seq.At", ErrIndexOutOfBounds)
	}
	return ((b*s.c+c)*s.t+t)*s.n + n, nil
}

// At retrieves the element at (b,c,t,n).
// Complexity: O(1).
func (s *Seq) At(b, c, t, n int) (float64, error) {
	idx, err := s.indexOf(b, c, t, n)
	if err != nil {
		return 0, err
	}
	return s.data[idx], nil
}

// Set assigns value v at (b,c,t,n).
// Complexity: O(1).
func (s *Seq) Set(b, c, t, n int, v float64) error {
	idx, err := s.indexOf(b, c, t, n)
	if err != nil {
		return err
	}
	s.data[idx] = v
	return nil
}

// NodeMatrix extracts the N×C matrix of node embeddings at (batch b, time t):
// row n holds the channel vector of node n. The result is a copy; mutating it
// does not touch the sequence.
// Complexity: O(N·C).
func (s *Seq) NodeMatrix(b, t int) (*mat.Dense, error) {
	if b < 0 || b >= s.b || t < 0 || t >= s.t {
		return nil, tensorErrorf("Seq.NodeMatrix", ErrIndexOutOfBounds)
	}
	out := mat.NewDense(s.n, s.c, nil)
	for c := 0; c < s.c; c++ {
		base := ((b*s.c+c)*s.t + t) * s.n
		for n := 0; n < s.n; n++ {
			out.Set(n, c, s.data[base+n])
		}
	}
	return out, nil
}

// SetNodeMatrix writes an N×C node-embedding matrix into the sequence at
// (batch b, time t), the inverse of NodeMatrix.
// Complexity: O(N·C).
func (s *Seq) SetNodeMatrix(b, t int, m *mat.Dense) error {
	if b < 0 || b >= s.b || t < 0 || t >= s.t {
		return tensorErrorf("Seq.SetNodeMatrix", ErrIndexOutOfBounds)
	}
	r, c := m.Dims()
	if r != s.n || c != s.c {
		return tensorErrorf("Seq.SetNodeMatrix", ErrShapeMismatch)
	}
	for ci := 0; ci < s.c; ci++ {
		base := ((b*s.c+ci)*s.t + t) * s.n
		for n := 0; n < s.n; n++ {
			s.data[base+n] = m.At(n, ci)
		}
	}
	return nil
}

// NormalizeChannels rescales every (batch, time, node) channel vector to unit
// L2 norm in place. Norms below normEps are clamped, so zero vectors stay
// zero instead of producing NaN.
// Complexity: O(B·C·T·N).
func (s *Seq) NormalizeChannels() {
	for b := 0; b < s.b; b++ {
		for t := 0; t < s.t; t++ {
			for n := 0; n < s.n; n++ {
				sum := 0.0
				for c := 0; c < s.c; c++ {
					v := s.data[((b*s.c+c)*s.t+t)*s.n+n]
					sum += v * v
				}
				norm := math.Sqrt(sum)
				if norm < normEps {
					norm = normEps
				}
				for c := 0; c < s.c; c++ {
					s.data[((b*s.c+c)*s.t+t)*s.n+n] /= norm
				}
			}
		}
	}
}
