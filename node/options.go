package node

import "math/rand"

// Options configures node extraction.
//
// Fields:
//   - FeatDropRate — per-element probability of zeroing a feature-map value
//     before pooling; surviving values are rescaled by 1/(1−rate) so the
//     expected activation is unchanged. 0 disables feature dropout.
//   - Rand — randomness source for feature dropout; required when
//     FeatDropRate > 0 so corruption is reproducible under a fixed seed.
type Options struct {
	FeatDropRate float64
	Rand         *rand.Rand
}

// DefaultOptions returns the documented defaults: no feature dropout.
func DefaultOptions() Options {
	return Options{}
}

// validate enforces option invariants.
func (o *Options) validate() error {
	if o.FeatDropRate < 0 || o.FeatDropRate >= 1 {
		return ErrBadDropRate
	}
	if o.FeatDropRate > 0 && o.Rand == nil {
		return ErrNilRand
	}
	return nil
}
