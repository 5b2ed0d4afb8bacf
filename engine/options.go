package engine

// GameOption configures a Game at construction. Functional options keep
// NewGame's signature stable as new knobs are added.
type GameOption func(*options)

type options struct {
	strictGrounding bool
}

func defaultOptions() options {
	return options{strictGrounding: false}
}

// WithStrictGrounding controls whether a step that leaves harmonics Low
// must also leave the matrix fully grounded. The reference this system was
// distilled from disables the check entirely for performance; the default
// here matches that behavior. Pass true to reject any Low-harmonics step
// whose resulting matrix has an unsupported voxel.
func WithStrictGrounding(enabled bool) GameOption {
	return func(o *options) { o.strictGrounding = enabled }
}
