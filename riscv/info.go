package riscv

// BaseSet selects the base integer ISA an instruction word is decoded
// against. It only affects a handful of encodings that are reused between
// RV32 and RV64 with different meanings (C.JAL on RV32 is C.ADDIW on RV64).
type BaseSet int

const (
	RV32I BaseSet = iota
	RV64I
)

// Info is the minimal predicate set the tracer needs from a fetched
// instruction. It is stateless: extracted once per fetch and never mutated
// afterward.
type Info struct {
	// Size is the instruction's encoded length in bytes: 2 or 4 for every
	// instruction this package assigns predicates to.
	Size int

	// Mnemonic is a short lowercase name, used only for logging/debugging.
	Mnemonic string

	// Rd, Rs1, Rs2 are the decoded register fields, used for call/return
	// classification. They are meaningless (zero) for instruction forms
	// that don't have them.
	Rd, Rs1, Rs2 uint8

	// Immediate is the branch-offset or inferable-jump-offset immediate
	// (already sign-extended, in bytes, relative to the instruction's own
	// PC), or the raw upper-immediate value for UpperImmediate
	// instructions (auipc/lui/c.lui).
	Immediate int64

	Branch           bool
	InferableJump    bool
	UninferableJump  bool
	Call             bool
	Return           bool
	TrapReturn       bool
	EcallOrEbreak    bool
	UpperImmediate   bool
}

// UninferableDiscontinuity reports whether this instruction is a PC change
// the decoder cannot predict from the static image alone - an uninferable
// jump or a trap return - which therefore must be reported by the encoder.
func (i Info) UninferableDiscontinuity() bool {
	return i.UninferableJump || i.TrapReturn
}

// Unknown reports whether the info carries no predicates at all: either a
// reserved/illegal encoding, or simply an ordinary instruction
// (arithmetic/load/store/CSR/...) this package doesn't need to classify
// any further than "retires and falls through."
func (i Info) Unknown() bool {
	return !i.Branch && !i.InferableJump && !i.UninferableJump &&
		!i.TrapReturn && !i.EcallOrEbreak && !i.UpperImmediate
}

// linkRegisters are x1 (ra) and x5 (t0/alternate link register), per the
// RISC-V calling convention's definition of a "call" vs. a plain jump.
const (
	regRA = 1
	regT0 = 5
)

func isLinkRegister(r uint8) bool {
	return r == regRA || r == regT0
}
