package engine

import "errors"

// Sentinel errors for Game.Execute. Wrap with %w at the call site when
// additional context (bot, command, point) is useful; never at the
// sentinel definition.
var (
	// ErrNilModel indicates NewGame received a nil source or destination model.
	ErrNilModel = errors.New("engine: nil model")

	// ErrResolutionMismatch indicates the source and destination models
	// have different resolutions.
	ErrResolutionMismatch = errors.New("engine: resolution mismatch")

	// ErrAlreadyComplete indicates Execute was called after a Halt step.
	ErrAlreadyComplete = errors.New("engine: game already complete")

	// ErrBotCountMismatch indicates the trace slice length does not equal
	// the current bot count.
	ErrBotCountMismatch = errors.New("engine: trace length does not match bot count")

	// ErrIllegalCommand indicates a command fails its direction predicate,
	// targets an out-of-range point, or sweeps through a full voxel.
	ErrIllegalCommand = errors.New("engine: illegal command")

	// ErrSeedCount indicates a Fission command's seed index m is not
	// strictly less than the bot's seed count.
	ErrSeedCount = errors.New("engine: insufficient seeds for fission")

	// ErrInterference indicates two bots' volatile point sets collide.
	ErrInterference = errors.New("engine: volatile point collision")

	// ErrGroupViolation indicates an unpaired fusion, a group primitive
	// with other than 8 members, or a group whose members disagree on
	// root corner or command variant.
	ErrGroupViolation = errors.New("engine: group violation")

	// ErrHaltPrecondition indicates a Halt command was issued while more
	// than one bot is live, the bot is not at the origin, harmonics is
	// High, or the matrix does not equal the destination model.
	ErrHaltPrecondition = errors.New("engine: halt precondition failed")

	// ErrInvariantViolation indicates a post-step bot-set invariant failed
	// (distinct bids/positions, no bot on a full voxel, seed partition).
	ErrInvariantViolation = errors.New("engine: bot set invariant violated")

	// ErrNotGrounded indicates strict-grounding mode is enabled, harmonics
	// is Low, and the post-step matrix is not fully grounded.
	ErrNotGrounded = errors.New("engine: matrix not grounded under low harmonics")
)
