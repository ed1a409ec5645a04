// SPDX-License-Identifier: MIT

// Package model: functional configuration in the WithX style. Constructors
// panic on nonsensical values (programmer error, not runtime input); every
// flag changes behavior and is covered by tests.
package model

import "math/rand"

// Regime names the input interpretation, fixed at construction time.
type Regime int

const (
	// RegimePatches — clips arrive pre-cropped, several patches per frame
	// stacked along the channel axis; one node per patch.
	RegimePatches Regime = iota

	// RegimeWholeFrame — one clip per frame; every output spatial cell of
	// the encoder's feature map becomes a node.
	RegimeWholeFrame

	// RegimeSuperpixel — whole frames plus a per-pixel label mask; one node
	// per superpixel region, padded to a fixed maximum.
	RegimeSuperpixel
)

// Defaults.
const (
	// DefaultTemperature is the softmax sharpness.
	DefaultTemperature = 0.07

	// visProbability is the chance a training forward invokes the
	// visualization hook.
	visProbability = 0.02
)

// config carries the resolved model configuration.
type config struct {
	regime      Regime
	temperature float64
	edgeDrop    float64
	featDrop    float64
	headDepth   int
	flip        bool
	skTargets   bool
	device      string
	rng         *rand.Rand
	vis         VisualFunc
}

// defaultConfig mirrors the recognized option defaults: no dropout,
// temperature 0.07, identity head, right-composition palindromes.
func defaultConfig() config {
	return config{
		regime:      RegimePatches,
		temperature: DefaultTemperature,
		device:      "cpu",
	}
}

// Option mutates the model configuration at construction time.
type Option func(*config)

// WithRegime fixes the input interpretation. Panics on an unknown regime.
func WithRegime(r Regime) Option {
	if r != RegimePatches && r != RegimeWholeFrame && r != RegimeSuperpixel {
		panic("model: unknown regime")
	}
	return func(c *config) { c.regime = r }
}

// WithTemperature sets the softmax sharpness. Panics unless t > 0.
func WithTemperature(t float64) Option {
	if t <= 0 {
		panic("model: temperature must be > 0")
	}
	return func(c *config) { c.temperature = t }
}

// WithEdgeDropout sets the edge-corruption rate. Panics unless 0 ≤ rate < 1.
func WithEdgeDropout(rate float64) Option {
	if rate < 0 || rate >= 1 {
		panic("model: edge-dropout rate must be in [0,1)")
	}
	return func(c *config) { c.edgeDrop = rate }
}

// WithFeatureDropout sets the feature-dropout rate. Panics unless 0 ≤ rate < 1.
func WithFeatureDropout(rate float64) Option {
	if rate < 0 || rate >= 1 {
		panic("model: feature-dropout rate must be in [0,1)")
	}
	return func(c *config) { c.featDrop = rate }
}

// WithHeadDepth sets the embedding-head depth; 0 keeps the identity head.
// Panics on negative depth.
func WithHeadDepth(depth int) Option {
	if depth < 0 {
		panic("model: head depth must be >= 0")
	}
	return func(c *config) { c.headDepth = depth }
}

// WithFlip keeps the left-composition palindrome walks instead of the
// right-composition ones.
func WithFlip() Option {
	return func(c *config) { c.flip = true }
}

// WithSinkhornTargets switches from palindrome walks with identity targets
// to forward-only walks with Sinkhorn pseudo-label targets.
func WithSinkhornTargets() Option {
	return func(c *config) { c.skTargets = true }
}

// WithDevice names the execution device for target-cache keying.
func WithDevice(name string) Option {
	if name == "" {
		panic("model: device name must not be empty")
	}
	return func(c *config) { c.device = name }
}

// WithRand injects the randomness source used for dropout, head
// initialization and visualization sampling. A fixed seed makes every
// stochastic choice reproducible.
func WithRand(rng *rand.Rand) Option {
	if rng == nil {
		panic("model: rng must not be nil")
	}
	return func(c *config) { c.rng = rng }
}

// WithVisualizer installs a hook invoked with probability 0.02 per training
// forward. Purely a side effect for human inspection.
func WithVisualizer(hook VisualFunc) Option {
	return func(c *config) { c.vis = hook }
}
