// Package tensor: shared sentinel errors and numeric policy.
package tensor

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions indicates that requested array dimensions are non-positive.
var ErrInvalidDimensions = errors.New("tensor: dimensions must be > 0")

// ErrIndexOutOfBounds indicates that an index is outside its valid range.
var ErrIndexOutOfBounds = errors.New("tensor: index out of bounds")

// ErrShapeMismatch indicates that two shapes that must agree do not.
var ErrShapeMismatch = errors.New("tensor: shape mismatch")

// normEps is the lower clamp on an L2 norm before division, so that an
// all-zero vector normalizes to zero instead of NaN.
const normEps = 1e-12

// tensorErrorf wraps an underlying error with method context.
func tensorErrorf(method string, err error) error {
	return fmt.Errorf("tensor.%s: %w", method, err)
}
