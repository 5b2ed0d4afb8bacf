package solver

import "errors"

// Sentinel errors for the solver package.
var (
	// ErrNilModel indicates a nil source or destination model was passed to Solve.
	ErrNilModel = errors.New("solver: nil model")

	// ErrResolutionMismatch indicates src and dst models disagree on R.
	ErrResolutionMismatch = errors.New("solver: resolution mismatch")

	// ErrTooManyBots indicates the work split would require more than the
	// 40-bot hard cap to deploy.
	ErrTooManyBots = errors.New("solver: requested bot count exceeds 40")

	// ErrStarvation indicates every attempt either exceeded MaxStepsPerAttempt
	// or failed to reach a Halt-able state, across the full retry budget.
	ErrStarvation = errors.New("solver: exhausted retries without a valid trace")
)
