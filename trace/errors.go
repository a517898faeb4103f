package trace

import "errors"

// Tracer errors. These correspond to the *Protocol* error kind (plus
// NoInstruction, which wraps the riscv package's Binary kind with the PC
// the tracer was trying to resolve).
var (
	// ErrNotTracing is returned by Tracer.Process when the tracer is Idle
	// and the payload is not a Sync.Start.
	ErrNotTracing = errors.New("trace: not tracing, expected sync.start")

	// ErrUnexpectedPayload is returned for a payload the current state
	// cannot consume, e.g. an Extension payload for an option the unit does
	// not enable.
	ErrUnexpectedPayload = errors.New("trace: unexpected payload for current state")

	// ErrNoInstruction wraps a riscv.MissError or decode error encountered
	// while walking the binary image.
	ErrNoInstruction = errors.New("trace: no instruction at address the walk needed to resolve")

	// ErrInconsistentTrace is returned when the reported PC is unreachable
	// from the path the tracer walked - including the conservative
	// treatment of updiscon at a trap instruction with
	// sequentially-inferred-jumps enabled (DESIGN.md Open Question 3).
	ErrInconsistentTrace = errors.New("trace: reported PC unreachable from walked path")

	// ErrReturnStackUnderflow names a return-stack depth mismatch. Tracer
	// does not return it: irdepth is only compared when the payload carries
	// an address, and a mismatch resolves the return from that address
	// instead (see Tracer.resolveDiscontinuity).
	ErrReturnStackUnderflow = errors.New("trace: return stack depth mismatch")
)
