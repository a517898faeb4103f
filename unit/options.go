package unit

// IOptions is the instruction-trace capability set an encoder unit can
// enable. Each flag changes how the tracer interprets a payload - see
// trace.Tracer's state machine for where each one is consulted.
type IOptions struct {
	// BranchPrediction allows a Branch payload to be replaced by a
	// predictor-count Extension payload.
	BranchPrediction bool

	// JumpTargetCache allows an uninferable jump to be replaced by a
	// target-index Extension payload instead of an AddressInfo report.
	JumpTargetCache bool

	// ImplicitReturn lets a return instruction consume the top of the
	// tracer's return stack instead of requiring an explicit address
	// report.
	ImplicitReturn bool

	// ImplicitException omits the cause field on a trap sync when the
	// cause is ECALL or EBREAK; the tracer synthesizes it from the EPC
	// instruction.
	ImplicitException bool

	// SequentiallyInferredJumps omits an address report for a
	// straight-line uninferable jump whose target is predictable from the
	// preceding synchronization.
	SequentiallyInferredJumps bool

	// FullAddress reports addresses as absolute values rather than signed
	// deltas from the last reported PC.
	FullAddress bool
}

// DOptions is the data-trace capability set. It is opaque to the tracer -
// recognized only so a packet decoder can skip a data-trace payload of the
// right shape - and is carried here as a flag bag rather than named fields,
// since spec.md treats data-trace payload semantics as out of scope beyond
// recognition/skipping.
type DOptions struct {
	Flags map[string]bool
}

// Enabled reports whether the named data-trace option is set.
func (d DOptions) Enabled(name string) bool {
	return d.Flags[name]
}
