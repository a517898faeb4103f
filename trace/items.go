package trace

import "github.com/retroenv/rvtrace/riscv"

// ItemKind discriminates the reconstructed trace items Tracer.Process
// yields.
type ItemKind int

const (
	ItemRetire ItemKind = iota
	ItemTrap
	ItemContext
)

func (k ItemKind) String() string {
	switch k {
	case ItemRetire:
		return "retire"
	case ItemTrap:
		return "trap"
	case ItemContext:
		return "context"
	default:
		return "unknown"
	}
}

// Retire reports one instruction inferred to have retired at PC.
type Retire struct {
	PC   uint64
	Info riscv.Info
}

// Trap reports a trap boundary: Epc is the address of the instruction the
// trap is attributed to (the trapping instruction for a synchronous
// exception, or wherever the walk stood when an asynchronous interrupt
// arrived), not the packet's reported handler address.
type Trap struct {
	Epc       uint64
	Cause     uint64
	Tval      uint64
	Interrupt bool
	Privilege uint8
}

// Context reports a privilege or context-register change with no
// instruction retirement attached to it.
type Context struct {
	Privilege uint8
	Context   uint64
}

// Item is a single tagged struct covering every trace item variant, mirroring
// packet.Payload's shape so callers switch exhaustively on Kind.
type Item struct {
	Kind ItemKind

	Retire  Retire
	Trap    Trap
	Context Context
}
