package coord

import "errors"

// Sentinel errors for coord operations.
var (
	// ErrOutOfRange indicates a point translation left the [0,R) cube.
	ErrOutOfRange = errors.New("coord: point out of range")

	// ErrNotNear indicates a displacement failed the near predicate
	// (Manhattan length 1 or 2, Chebyshev length exactly 1).
	ErrNotNear = errors.New("coord: displacement is not near")

	// ErrNotFar indicates a displacement failed the far predicate
	// (Chebyshev length 1..=30).
	ErrNotFar = errors.New("coord: displacement is not far")

	// ErrNotShortLinear indicates a displacement is not single-axis
	// with magnitude 1..=5.
	ErrNotShortLinear = errors.New("coord: displacement is not short-linear")

	// ErrNotLongLinear indicates a displacement is not single-axis
	// with magnitude 1..=15.
	ErrNotLongLinear = errors.New("coord: displacement is not long-linear")
)
