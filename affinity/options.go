// SPDX-License-Identifier: MIT

// Package affinity: numeric policy and option defaults for stochastic-matrix
// construction. Options values are plain data; validation happens once per
// StochMat/SinkhornKnopp call via validate().
package affinity

import (
	"errors"
	"math/rand"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTemperature is the softmax sharpness applied to affinities
	// before exponentiation.
	DefaultTemperature = 0.07

	// DefaultEdgeDropRate disables edge dropout.
	DefaultEdgeDropRate = 0.0

	// DefaultSinkhornTol is the maximum allowed deviation of row and column
	// sums from 1 before Sinkhorn–Knopp stops early.
	DefaultSinkhornTol = 0.01

	// DefaultSinkhornMaxIter caps the alternating rescaling loop, which
	// guarantees termination regardless of convergence.
	DefaultSinkhornMaxIter = 100

	// dropSentinel replaces an affinity entry removed by edge dropout.
	// It is negative enough that the entry vanishes under any reasonable
	// temperature softmax and under exp() before Sinkhorn rescaling.
	dropSentinel = -1e20
)

// ---------- Errors ----------

var (
	// ErrNilMatrix indicates a nil matrix argument.
	ErrNilMatrix = errors.New("affinity: matrix must not be nil")

	// ErrNotSquare indicates diagonal masking of a non-square matrix.
	ErrNotSquare = errors.New("affinity: matrix must be square")

	// ErrShapeMismatch indicates that two node sets disagree on channel width,
	// or that an embedding sequence is too short for consecutive pairs.
	ErrShapeMismatch = errors.New("affinity: shape mismatch")

	// ErrBadTemperature indicates a non-positive softmax temperature.
	ErrBadTemperature = errors.New("affinity: temperature must be > 0")

	// ErrBadDropRate indicates an edge-dropout rate outside [0, 1).
	ErrBadDropRate = errors.New("affinity: edge-dropout rate must be in [0,1)")

	// ErrBadSinkhorn indicates a non-positive tolerance or iteration cap.
	ErrBadSinkhorn = errors.New("affinity: sinkhorn tolerance and max iterations must be > 0")

	// ErrNilRand indicates EdgeDropRate > 0 without a randomness source.
	ErrNilRand = errors.New("affinity: edge dropout requires a *rand.Rand")
)

// Options configures stochastic-matrix construction.
//
// Fields:
//   - Temperature     — softmax sharpness; scales affinities before exp.
//   - EdgeDropRate    — per-entry probability of removing an edge before
//     normalization; 0 disables dropout entirely.
//   - Rand            — randomness source for edge dropout. Kept explicit so
//     a fixed seed makes the corruption reproducible.
//   - SinkhornTol     — stop once max |row/col sum − 1| falls below this.
//   - SinkhornMaxIter — hard cap on alternating rescaling iterations.
type Options struct {
	Temperature     float64
	EdgeDropRate    float64
	Rand            *rand.Rand
	SinkhornTol     float64
	SinkhornMaxIter int
}

// DefaultOptions returns the documented defaults: temperature 0.07, no edge
// dropout, Sinkhorn tolerance 0.01 with a cap of 100 iterations.
func DefaultOptions() Options {
	return Options{
		Temperature:     DefaultTemperature,
		EdgeDropRate:    DefaultEdgeDropRate,
		SinkhornTol:     DefaultSinkhornTol,
		SinkhornMaxIter: DefaultSinkhornMaxIter,
	}
}

// validate enforces option invariants; needDrop marks calls that will
// actually draw randomness.
func (o *Options) validate(needDrop bool) error {
	if o.Temperature <= 0 {
		return ErrBadTemperature
	}
	if o.EdgeDropRate < 0 || o.EdgeDropRate >= 1 {
		return ErrBadDropRate
	}
	if o.SinkhornTol <= 0 || o.SinkhornMaxIter <= 0 {
		return ErrBadSinkhorn
	}
	if needDrop && o.EdgeDropRate > 0 && o.Rand == nil {
		return ErrNilRand
	}
	return nil
}
