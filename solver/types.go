package solver

// Options configures one Solve call: how many restarts to try, how many
// successes to keep before stopping early, the per-attempt step budget, and
// the range random "prob" is sampled from each attempt.
//
// Zero value is not meaningful; start from DefaultOptions and override.
type Options struct {
	// Attempts is the hard cap on solve attempts.
	Attempts int

	// MaxSuccesses stops the retry loop early once this many attempts have
	// produced a valid, Halt-terminated trace.
	MaxSuccesses int

	// MaxStepsPerAttempt bounds how many engine steps a single attempt may
	// take before it is abandoned as starved.
	MaxStepsPerAttempt int

	// ProbMin and ProbMax bound the per-attempt uniform draw of "prob", the
	// single-bot move generator's perturbation-probability denominator
	// (1/prob chance of including a non-progress direction as a candidate).
	ProbMin int
	ProbMax int

	// Seed seeds the base RNG; each attempt, attempt 0 included, derives its
	// own independent sub-stream from it (see rng.go), so Seed alone makes
	// every attempt in a Solve call reproducible.
	Seed int64
}

// DefaultOptions returns reasonable defaults for a bounded multi-restart
// search: 50 attempts, stop after 20 successes, a ~2e6 step budget per
// attempt, and prob sampled from [20, 200).
func DefaultOptions() Options {
	return Options{
		Attempts:           50,
		MaxSuccesses:       20,
		MaxStepsPerAttempt: 2_000_000,
		ProbMin:            20,
		ProbMax:            200,
		Seed:               0,
	}
}
