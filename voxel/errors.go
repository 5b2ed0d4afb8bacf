package voxel

import "errors"

// Sentinel errors for voxel operations.
var (
	// ErrResolutionMismatch indicates an operation was attempted between
	// two matrices/models of different resolution R.
	ErrResolutionMismatch = errors.New("voxel: resolution mismatch")

	// ErrTruncatedStream indicates a model file ended before its declared
	// bit matrix was fully read.
	ErrTruncatedStream = errors.New("voxel: truncated model stream")
)
