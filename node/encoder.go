package node

import (
	"errors"

	"github.com/katalvlaran/crw/tensor"
)

// probeSize is the square side of the dummy input used to probe an encoder.
const probeSize = 256

var (
	// ErrNilEncoder indicates that no encoder was supplied.
	ErrNilEncoder = errors.New("node: encoder must not be nil")

	// ErrNilHead indicates that no embedding head was supplied.
	ErrNilHead = errors.New("node: head must not be nil")

	// ErrBadDepth indicates a negative embedding-head depth.
	ErrBadDepth = errors.New("node: head depth must be >= 0")

	// ErrBadDropRate indicates a feature-dropout rate outside [0, 1).
	ErrBadDropRate = errors.New("node: feature-dropout rate must be in [0,1)")

	// ErrNilRand indicates randomness was needed but no source supplied.
	ErrNilRand = errors.New("node: operation requires a *rand.Rand")

	// ErrShapeMismatch indicates that clip, mask or feature-map shapes disagree.
	ErrShapeMismatch = errors.New("node: shape mismatch")

	// ErrTooManySuperpixels indicates a frame names more regions than the
	// declared per-batch maximum.
	ErrTooManySuperpixels = errors.New("node: superpixel count exceeds declared maximum")
)

// Encoder is the external feature-extraction backbone. It receives a clip
// batch shaped (items, channels, time, height, width) and returns a
// feature-map stack (items, hidden, time, height', width'). The walk
// machinery never looks inside; swap in any backbone that honors the shape
// contract.
type Encoder interface {
	Forward(clips *tensor.Volume) (*tensor.Volume, error)
}

// Dims holds what Probe learns about an encoder: the hidden channel width of
// its feature maps and the input→output spatial downscaling ratio.
type Dims struct {
	HidDim   int // feature-map channel count
	MapScale int // input pixels per output spatial cell
}

// Probe runs a fixed 256×256 single-frame dummy clip through the encoder
// once and records its hidden dimension and map scale. Call it once at model
// construction; the values never change for a given backbone.
//
// Complexity: one encoder forward pass.
func Probe(enc Encoder) (Dims, error) {
	if enc == nil {
		return Dims{}, ErrNilEncoder
	}
	dummy, err := tensor.NewVolume(1, 3, 1, probeSize, probeSize)
	if err != nil {
		return Dims{}, err
	}
	out, err := enc.Forward(dummy)
	if err != nil {
		return Dims{}, err
	}
	_, hid, _, _, width := out.Dims()
	if hid <= 0 || width <= 0 || width > probeSize {
		return Dims{}, ErrShapeMismatch
	}
	return Dims{HidDim: hid, MapScale: probeSize / width}, nil
}
