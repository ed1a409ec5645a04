package tensor

// Volume is a 5-D float64 array indexed (item, channel, time, height, width),
// stored row-major in a single flat slice. It serves both as the clip batch
// fed to an encoder (item = batch·node) and as the feature-map stack the
// encoder returns.
type Volume struct {
	i, c, t, h, w int       // item, channel, time, height and width extents
	data          []float64 // flat backing storage, length == i*c*t*h*w
}

// NewVolume creates an I×C×T×H×W volume initialized to zeros.
// Complexity: O(I·C·T·H·W) time and memory.
func NewVolume(items, channels, steps, height, width int) (*Volume, error) {
	if items <= 0 || channels <= 0 || steps <= 0 || height <= 0 || width <= 0 {
		return nil, tensorErrorf("NewVolume", ErrInvalidDimensions)
	}
	return &Volume{
		i:    items,
		c:    channels,
		t:    steps,
		h:    height,
		w:    width,
		data: make([]float64, items*channels*steps*height*width),
	}, nil
}

// Dims returns the (item, channel, time, height, width) extents.
// Complexity: O(1).
func (v *Volume) Dims() (items, channels, steps, height, width int) {
	return v.i, v.c, v.t, v.h, v.w
}

// indexOf computes the flat index for (i,c,t,h,w) or returns ErrIndexOutOfBounds.
func (v *Volume) indexOf(i, c, t, h, w int) (int, error) {
	if i < 0 || i >= v.i || c < 0 || c >= v.c || t < 0 || t >= v.t ||
		h < 0 || h >= v.h || w < 0 || w >= v.w {
		return 0, tensorErrorf("Volume.At", ErrIndexOutOfBounds)
	}
	return (((i*v.c+c)*v.t+t)*v.h+h)*v.w + w, nil
}

// At retrieves the element at (i,c,t,h,w).
// Complexity: O(1).
func (v *Volume) At(i, c, t, h, w int) (float64, error) {
	idx, err := v.indexOf(i, c, t, h, w)
	if err != nil {
		return 0, err
	}
	return v.data[idx], nil
}

// Set assigns value x at (i,c,t,h,w).
// Complexity: O(1).
func (v *Volume) Set(i, c, t, h, w int, x float64) error {
	idx, err := v.indexOf(i, c, t, h, w)
	if err != nil {
		return err
	}
	v.data[idx] = x
	return nil
}

// GroupChannels reinterprets a B×(G·c)×T×H×W clip batch as (B·G)×c×T×H×W:
// the channel axis is split into G contiguous groups, and each group becomes
// its own item. This is how a batch of G pre-cropped patches per frame,
// stacked along the channel axis, is flattened into an encoder-ready batch.
// Stage 1 (Validate): channels must divide evenly by groups.
// Stage 2 (Execute): copy into the regrouped layout.
// Complexity: O(size) time and memory.
func (v *Volume) GroupChannels(groups int) (*Volume, error) {
	if groups <= 0 || v.c%groups != 0 {
		return nil, tensorErrorf("Volume.GroupChannels", ErrShapeMismatch)
	}
	per := v.c / groups
	out, err := NewVolume(v.i*groups, per, v.t, v.h, v.w)
	if err != nil {
		return nil, err
	}
	plane := v.t * v.h * v.w // elements per (item, channel) pair
	for i := 0; i < v.i; i++ {
		for g := 0; g < groups; g++ {
			for c := 0; c < per; c++ {
				src := ((i*v.c + g*per + c) * plane)
				dst := (((i*groups + g) * per) + c) * plane
				copy(out.data[dst:dst+plane], v.data[src:src+plane])
			}
		}
	}
	return out, nil
}

// Scale multiplies every element by f in place.
// Complexity: O(size).
func (v *Volume) Scale(f float64) {
	for i := range v.data {
		v.data[i] *= f
	}
}
