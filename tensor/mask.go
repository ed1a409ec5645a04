package tensor

// Mask is a 4-D int array indexed (batch, time, height, width) of per-pixel
// superpixel labels, produced by an offline segmentation pipeline. Labels
// within one (batch, time) frame need not be contiguous; the extractor
// discovers the distinct values itself.
type Mask struct {
	b, t, h, w int
	data       []int // flat backing storage, row-major
}

// NewMask creates a B×T×H×W label mask initialized to zeros.
// Complexity: O(size) time and memory.
func NewMask(batch, steps, height, width int) (*Mask, error) {
	if batch <= 0 || steps <= 0 || height <= 0 || width <= 0 {
		return nil, tensorErrorf("NewMask", ErrInvalidDimensions)
	}
	return &Mask{
		b: batch, t: steps, h: height, w: width,
		data: make([]int, batch*steps*height*width),
	}, nil
}

// Dims returns the (batch, time, height, width) extents.
// Complexity: O(1).
func (m *Mask) Dims() (batch, steps, height, width int) {
	return m.b, m.t, m.h, m.w
}

// At retrieves the label at (b,t,h,w).
// Complexity: O(1).
func (m *Mask) At(b, t, h, w int) (int, error) {
	if b < 0 || b >= m.b || t < 0 || t >= m.t || h < 0 || h >= m.h || w < 0 || w >= m.w {
		return 0, tensorErrorf("Mask.At", ErrIndexOutOfBounds)
	}
	return m.data[((b*m.t+t)*m.h+h)*m.w+w], nil
}

// Set assigns label v at (b,t,h,w).
// Complexity: O(1).
func (m *Mask) Set(b, t, h, w int, v int) error {
	if b < 0 || b >= m.b || t < 0 || t >= m.t || h < 0 || h >= m.h || w < 0 || w >= m.w {
		return tensorErrorf("Mask.Set", ErrIndexOutOfBounds)
	}
	m.data[((b*m.t+t)*m.h+h)*m.w+w] = v
	return nil
}
