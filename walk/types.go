// Package walk defines the walk emission types shared by the composition
// and loss stages.
package walk

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrLengthMismatch indicates forward/backward step lists of unequal length.
	ErrLengthMismatch = errors.New("walk: step lists must have equal length")

	// ErrNilStep indicates a nil transition matrix inside a step list.
	ErrNilStep = errors.New("walk: step matrices must not be nil")

	// ErrBadTarget indicates a target whose length disagrees with its
	// distribution's batch·node row count.
	ErrBadTarget = errors.New("walk: target length mismatch")
)

// Walk is one emitted (distribution, target) pair: a composed transition
// matrix per batch item under a descriptive label combining mode and length,
// and the index each row is expected to land on.
type Walk struct {
	// Name combines mode and length, e.g. "cyc r1" or "sk 2".
	Name string

	// Dist holds the composed N×N transition matrix of every batch item.
	Dist []*mat.Dense

	// Target holds batch·N destination indices, row-major over (batch, node).
	Target []int
}

// TargetFunc supplies the target indices for a walk of the given batch size
// and node count. The identity target (node j maps back to node j) is the
// usual choice; the model caches it per shape.
type TargetFunc func(batch, nodes int) []int
