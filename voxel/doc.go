// Package voxel implements the dense bitset grid (Matrix) and the
// well-formedness wrapper around it (Model) that the engine and solver
// operate on.
//
// # What & Why
//
//   - Matrix is a word-packed bitset over a cube of side R (R^3 bits),
//     indexed idx(p) = p.X*R^2 + p.Y*R + p.Z. It supports Get/Set/Unset,
//     population count, symmetric difference (used by the solver to find
//     remaining work), and a groundedness BFS.
//   - Model wraps a Matrix with the "well-formed" invariant the contest
//     requires of source/destination models: every full voxel stays one
//     cell inside the cube's x and z walls and below its top (y < R-1;
//     y=0, the floor, is allowed), and the full-voxel set is 6-connected
//     to the y=0 floor.
//
// # Complexity
//
//	Get/Set/Unset:          O(1)
//	Len:                    O(R^3/64)
//	SymmetricDifference:    O(R^3/64)
//	IsGrounded:             O(R^3) time, O(R^3) memory (BFS over full voxels)
//
// # Errors
//
//	ErrResolutionMismatch: SymmetricDifference/DiffPoints between differently sized matrices
//	                       (IsComplete reports false instead).
//	ErrTruncatedStream:    ReadModel hit EOF before the bit matrix was fully read.
package voxel
