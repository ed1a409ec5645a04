package tensor

// Maps is a 6-D float64 array indexed (batch, node, channel, time, height,
// width): the per-node feature maps sitting behind an embedding sequence.
// It is a read-mostly companion output of the node extractor; only the
// embedding sequence participates in walk computation.
type Maps struct {
	b, n, c, t, h, w int
	data             []float64 // flat backing storage, row-major
}

// NewMaps creates a B×N×C×T×H×W map stack initialized to zeros.
// Complexity: O(size) time and memory.
func NewMaps(batch, nodes, channels, steps, height, width int) (*Maps, error) {
	if batch <= 0 || nodes <= 0 || channels <= 0 || steps <= 0 || height <= 0 || width <= 0 {
		return nil, tensorErrorf("NewMaps", ErrInvalidDimensions)
	}
	return &Maps{
		b: batch, n: nodes, c: channels, t: steps, h: height, w: width,
		data: make([]float64, batch*nodes*channels*steps*height*width),
	}, nil
}

// MapsFromVolume regroups an (B·N)×C×T×H×W feature-map volume into a
// B×N×C×T×H×W stack. Items must factor exactly as batch·nodes.
// Complexity: O(size) time and memory.
func MapsFromVolume(v *Volume, batch, nodes int) (*Maps, error) {
	if v == nil {
		return nil, tensorErrorf("MapsFromVolume", ErrShapeMismatch)
	}
	items, channels, steps, height, width := v.Dims()
	if batch <= 0 || nodes <= 0 || items != batch*nodes {
		return nil, tensorErrorf("MapsFromVolume", ErrShapeMismatch)
	}
	out, err := NewMaps(batch, nodes, channels, steps, height, width)
	if err != nil {
		return nil, err
	}
	// Item (b,n) of the volume is already contiguous; a single copy suffices.
	copy(out.data, v.data)
	return out, nil
}

// Dims returns the (batch, node, channel, time, height, width) extents.
// Complexity: O(1).
func (m *Maps) Dims() (batch, nodes, channels, steps, height, width int) {
	return m.b, m.n, m.c, m.t, m.h, m.w
}

// At retrieves the element at (b,n,c,t,h,w).
// Complexity: O(1).
func (m *Maps) At(b, n, c, t, h, w int) (float64, error) {
	if b < 0 || b >= m.b || n < 0 || n >= m.n || c < 0 || c >= m.c ||
		t < 0 || t >= m.t || h < 0 || h >= m.h || w < 0 || w >= m.w {
		return 0, tensorErrorf("Maps.At", ErrIndexOutOfBounds)
	}
	return m.data[((((b*m.n+n)*m.c+c)*m.t+t)*m.h+h)*m.w+w], nil
}

// Set assigns value x at (b,n,c,t,h,w).
// Complexity: O(1).
func (m *Maps) Set(b, n, c, t, h, w int, x float64) error {
	if b < 0 || b >= m.b || n < 0 || n >= m.n || c < 0 || c >= m.c ||
		t < 0 || t >= m.t || h < 0 || h >= m.h || w < 0 || w >= m.w {
		return tensorErrorf("Maps.Set", ErrIndexOutOfBounds)
	}
	m.data[((((b*m.n+n)*m.c+c)*m.t+t)*m.h+h)*m.w+w] = x
	return nil
}
