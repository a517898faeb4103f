package unit

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Params holds the per-encoder field widths recognized by the tracer and
// packet decoder builder (spec.md §6 "Encoder parameters").
type Params struct {
	// IAddressWidth is the width in bits of a reported or delta-encoded
	// instruction address, 16..64.
	IAddressWidth int

	// ContextWidth is the width in bits of the context field carried by
	// Sync.Start/Sync.Context payloads.
	ContextWidth int

	// TimeWidth is the width in bits of the time-tag field carried by an
	// SMI packet header.
	TimeWidth int

	// EcauseWidth is the width in bits of the trap cause field.
	EcauseWidth int

	// PrivilegeWidth is the width in bits of the privilege-level field.
	PrivilegeWidth int

	// BPredSize is the width in bits of the branch-prediction counter
	// carried by an Extension payload, relevant only when BranchPrediction
	// is enabled.
	BPredSize int

	// CacheSize is the width in bits of the jump-target-cache index carried
	// by an Extension payload, relevant only when JumpTargetCache is
	// enabled.
	CacheSize int

	// F0SWidth is the width in bits of the SMI trace_type field, default 2.
	F0SWidth int

	// BranchCountWidth is the width in bits of a Branch payload's count
	// field. The branch map itself holds at most 32 outcomes, so 6 bits is
	// enough to represent every legal count (0..32) plus headroom.
	BranchCountWidth int

	// IRetireWidth and ILastSizeWidth are encoder-input widths. The
	// decoder never reads them; they exist only so a caller reimplementing
	// an encoder against this module's types has a home for them.
	IRetireWidth   int
	ILastSizeWidth int
}

// DefaultParams returns the E-Trace reference defaults: a 64-bit address
// space, 2-bit SMI trace-type field, and otherwise conservative widths
// that accommodate a 64-bit RISC-V hart.
func DefaultParams() Params {
	return Params{
		IAddressWidth:  64,
		ContextWidth:   8,
		TimeWidth:      40,
		EcauseWidth:    5,
		PrivilegeWidth: 2,
		BPredSize:      4,
		CacheSize:      4,
		F0SWidth:         2,
		BranchCountWidth: 6,
		IRetireWidth:     4,
		ILastSizeWidth:   2,
	}
}

// Validate checks that every width is within the range the E-Trace spec
// permits. IAddressWidth must be 16..64; every other width must be 1..64
// (a zero-width field is never legal, a packet with no field for it simply
// omits the corresponding payload option).
func (p Params) Validate() error {
	if p.IAddressWidth < 16 || p.IAddressWidth > 64 {
		return fmt.Errorf("%w: iaddress_width_p=%d must be 16..64", ErrInvalidWidth, p.IAddressWidth)
	}
	widths := map[string]int{
		"context_width_p":     p.ContextWidth,
		"time_width_p":        p.TimeWidth,
		"ecause_width_p":      p.EcauseWidth,
		"privilege_width_p":   p.PrivilegeWidth,
		"branch_count_width":  p.BranchCountWidth,
		"bpred_size_p":        p.BPredSize,
		"cache_size_p":        p.CacheSize,
		"f0s_width_p":         p.F0SWidth,
		"iretire_width_p":     p.IRetireWidth,
		"ilastsize_width_p":   p.ILastSizeWidth,
	}
	for name, w := range widths {
		if w < 1 || w > 64 {
			return fmt.Errorf("%w: %s=%d must be 1..64", ErrInvalidWidth, name, w)
		}
	}
	return nil
}

// MaskAddress masks addr to the configured address width: every PC the
// tracer computes or compares must be truncated to IAddressWidth bits.
func (p Params) MaskAddress(addr uint64) uint64 {
	return maskWidth(addr, p.IAddressWidth)
}

// maskWidth masks v to its low n bits, for any unsigned integer type:
// generic code constrained over constraints.Unsigned rather than a single
// hardcoded width. MaskAddress is its only caller.
func maskWidth[T constraints.Unsigned](v T, n int) T {
	if n <= 0 {
		return 0
	}
	if n >= 64 {
		return v
	}
	return v & ((T(1) << uint(n)) - 1)
}
