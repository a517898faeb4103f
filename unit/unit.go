package unit

// Unit describes a concrete encoder model: its field widths and the
// instruction-/data-trace option sets it has enabled. The packet decoder
// and tracer are built against this interface rather than a concrete type
// so a caller can supply Reference, PULP, a customized variant of either,
// or a Dyn wrapping one chosen at runtime.
type Unit interface {
	// Name identifies the unit, e.g. "reference" or "pulp", for logging
	// and error messages.
	Name() string

	Params() Params
	IOptions() IOptions
	DOptions() DOptions
}

// Option customizes a Params/IOptions pair when building a concrete unit,
// following a functional-option pattern.
type Option func(*Params, *IOptions)

// WithAddressWidth overrides the configured instruction-address width.
func WithAddressWidth(bits int) Option {
	return func(p *Params, _ *IOptions) {
		p.IAddressWidth = bits
	}
}

// WithParams replaces the unit's whole Params record, e.g. one assembled by
// a caller from an external config source (a TOML file, per spec.md §6).
func WithParams(params Params) Option {
	return func(p *Params, _ *IOptions) {
		*p = params
	}
}

// WithFullAddress enables or disables full (absolute) address reporting.
func WithFullAddress(enabled bool) Option {
	return func(_ *Params, o *IOptions) {
		o.FullAddress = enabled
	}
}

// WithImplicitReturn enables or disables implicit-return handling.
func WithImplicitReturn(enabled bool) Option {
	return func(_ *Params, o *IOptions) {
		o.ImplicitReturn = enabled
	}
}

// WithImplicitException enables or disables implicit-exception handling.
func WithImplicitException(enabled bool) Option {
	return func(_ *Params, o *IOptions) {
		o.ImplicitException = enabled
	}
}

// WithBranchPrediction enables or disables branch-prediction extension
// payloads.
func WithBranchPrediction(enabled bool) Option {
	return func(_ *Params, o *IOptions) {
		o.BranchPrediction = enabled
	}
}

// WithJumpTargetCache enables or disables jump-target-cache extension
// payloads.
func WithJumpTargetCache(enabled bool) Option {
	return func(_ *Params, o *IOptions) {
		o.JumpTargetCache = enabled
	}
}

// WithSequentiallyInferredJumps enables or disables sequentially-inferred
// jump elision.
func WithSequentiallyInferredJumps(enabled bool) Option {
	return func(_ *Params, o *IOptions) {
		o.SequentiallyInferredJumps = enabled
	}
}
