package packet

import "github.com/retroenv/rvtrace/unit"

// Kind discriminates the instruction-trace payload variants (spec.md §3).
type Kind int

const (
	KindExtension Kind = iota
	KindAddressInfo
	KindBranch
	KindSyncStart
	KindSyncTrap
	KindSyncContext
	KindSyncSupport
)

func (k Kind) String() string {
	switch k {
	case KindExtension:
		return "extension"
	case KindAddressInfo:
		return "address_info"
	case KindBranch:
		return "branch"
	case KindSyncStart:
		return "sync.start"
	case KindSyncTrap:
		return "sync.trap"
	case KindSyncContext:
		return "sync.context"
	case KindSyncSupport:
		return "sync.support"
	default:
		return "unknown"
	}
}

// format is the 2-bit instruction-trace payload format field.
type format uint8

const (
	formatExtension   format = 0
	formatAddressInfo format = 1
	formatBranch      format = 2
	formatSync        format = 3
)

// syncSubformat is the 2-bit subformat field that disambiguates a format-3
// (sync) payload.
type syncSubformat uint8

const (
	subformatStart   syncSubformat = 0
	subformatTrap    syncSubformat = 1
	subformatContext syncSubformat = 2
	subformatSupport syncSubformat = 3
)

// SyncStart carries a full address used to (re)anchor the tracer.
type SyncStart struct {
	Address   uint64
	Privilege uint8
	// BranchFlag reports whether a branch map was in progress when tracing
	// (re)started. The tracer always re-anchors on SyncStart with an empty
	// branch map, so this is decoded for completeness only.
	BranchFlag bool
	Context    uint64
}

// SyncTrap reports a trap boundary. Thaddr distinguishes trap entry
// (Address is the handler PC) from a trap-return-address report (Address
// is the post-mret/sret/uret PC).
type SyncTrap struct {
	Address   uint64
	Cause     uint64
	Interrupt bool
	Tval      uint64
	Privilege uint8
	Thaddr    bool
}

// SyncContext reports a privilege/context change with no PC movement.
type SyncContext struct {
	Privilege uint8
	Context   uint64
}

// QualStatus is the encoder's qualification status carried by a
// Sync.Support payload.
type QualStatus uint8

const (
	QualNoChange QualStatus = iota
	QualEndedRep
	QualTracing
	QualNotTracing
)

// SyncSupport is a meta-status payload: encoder mode and the option sets
// currently in effect.
type SyncSupport struct {
	EncoderMode uint8
	QualStatus  QualStatus
	IOptions    unit.IOptions
	DOptions    unit.DOptions
}

// AddressInfo delivers the target of an uninferable jump, a sequentially-
// inferred jump, or the tail of a Branch run. Address is a signed delta
// from the last reported PC unless the unit's FullAddress option is set,
// in which case it's absolute.
type AddressInfo struct {
	Address uint64
	// Notify flags that this packet was forced out by an ioptions.implicit_return
	// side-channel notification rather than a discontinuity; it carries no
	// information the tracer needs to reconstruct control flow and is decoded
	// for completeness only.
	Notify   bool
	Updiscon bool
	IrReport bool
	IrDepth  uint32
}

// Branch carries a run of branch outcomes and, optionally, the
// AddressInfo that terminates the run.
type Branch struct {
	Map         BranchMap
	HasAddress  bool
	AddressInfo AddressInfo
}

// ExtKind discriminates the Extension payload's unit-specific sub-variants.
type ExtKind uint8

const (
	ExtBranchPrediction ExtKind = iota
	ExtJumpTargetIndex
)

// Extension carries a branch-prediction counter or jump-target-cache
// index, replacing a Branch or AddressInfo payload when the corresponding
// unit option is enabled.
type Extension struct {
	ExtKind         ExtKind
	BranchPredCount uint32
	JumpTargetIndex uint32
}

// Payload is the decoded instruction-trace payload: a single tagged
// struct rather than one type per variant, so callers switch exhaustively
// on Kind and read only the fields that kind populates (spec.md §9 "sum
// types for payloads and items: tagged unions with exhaustive switch").
type Payload struct {
	Kind Kind

	SyncStart   SyncStart
	SyncTrap    SyncTrap
	SyncContext SyncContext
	SyncSupport SyncSupport
	Branch      Branch
	AddressInfo AddressInfo
	Extension   Extension
}
