package unit

// Reference is the E-Trace specification's reference encoder model: a
// full-featured 64-bit-address unit with every instruction-trace option
// available.
type Reference struct {
	params   Params
	ioptions IOptions
	doptions DOptions
}

// NewReference builds a Reference unit, starting from DefaultParams and the
// reference encoder's all-options-available defaults, then applying opts.
func NewReference(opts ...Option) *Reference {
	p := DefaultParams()
	o := IOptions{
		BranchPrediction:          true,
		JumpTargetCache:           true,
		ImplicitReturn:            true,
		ImplicitException:         true,
		SequentiallyInferredJumps: true,
		FullAddress:               false,
	}
	for _, opt := range opts {
		opt(&p, &o)
	}
	return &Reference{params: p, ioptions: o, doptions: DOptions{Flags: map[string]bool{}}}
}

func (r *Reference) Name() string          { return "reference" }
func (r *Reference) Params() Params        { return r.params }
func (r *Reference) IOptions() IOptions    { return r.ioptions }
func (r *Reference) DOptions() DOptions    { return r.doptions }
