package unit

// PULP models the rv_tracer encoder used by PULP-family cores: a narrower,
// simpler unit than Reference. It defaults to a 32-bit address space, no
// jump-target-cache, and no branch-prediction extension support, matching
// rv_tracer's lack of a prediction/target-cache hardware block.
type PULP struct {
	params   Params
	ioptions IOptions
	doptions DOptions
}

// NewPULP builds a PULP unit with rv_tracer's narrower defaults, then
// applies opts.
func NewPULP(opts ...Option) *PULP {
	p := DefaultParams()
	p.IAddressWidth = 32
	p.ContextWidth = 1 // PULP single-hart cores report a 1-bit stub context
	p.TimeWidth = 1

	o := IOptions{
		BranchPrediction:          false,
		JumpTargetCache:           false,
		ImplicitReturn:            true,
		ImplicitException:         true,
		SequentiallyInferredJumps: true,
		FullAddress:               false,
	}
	for _, opt := range opts {
		opt(&p, &o)
	}
	return &PULP{params: p, ioptions: o, doptions: DOptions{Flags: map[string]bool{}}}
}

func (u *PULP) Name() string       { return "pulp" }
func (u *PULP) Params() Params     { return u.params }
func (u *PULP) IOptions() IOptions { return u.ioptions }
func (u *PULP) DOptions() DOptions { return u.doptions }
