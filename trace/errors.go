package trace

import "errors"

// Sentinel errors for trace operations.
var (
	// ErrMalformed indicates the byte stream does not match any known
	// command encoding.
	ErrMalformed = errors.New("trace: malformed command stream")

	// ErrInvalidCoordinate indicates a command's displacement would carry
	// its bot outside the grid; returned by VolatilePoints.
	ErrInvalidCoordinate = errors.New("trace: invalid coordinate")
)
