package trace

import (
	"fmt"

	"github.com/retroenv/rvtrace/packet"
	"github.com/retroenv/rvtrace/riscv"
	"github.com/retroenv/rvtrace/unit"
)

// Tracer reconstructs a hart's retired-instruction stream by walking a
// riscv.BinaryImage forward from the last known program counter, consuming
// one packet.Payload at a time to resolve every point the static image
// alone can't predict: conditional branch outcomes, uninferable jump
// targets, and trap/context boundaries.
type Tracer struct {
	image riscv.BinaryImage
	base  riscv.BaseSet
	unit  unit.Unit

	state      state
	pc         uint64
	privilege  uint8
	context    uint64
	qualStatus packet.QualStatus

	returnStack []uint64
	jumpTargets jumpTargetCache
}

// New builds a Tracer over image, decoding instructions against base and
// interpreting payloads using u's field widths and option set.
func New(image riscv.BinaryImage, base riscv.BaseSet, u unit.Unit) *Tracer {
	return &Tracer{image: image, base: base, unit: u}
}

// PC returns the Tracer's current program counter, the address the next
// fetch will be made from. It is meaningful only while IsTracing is true.
func (t *Tracer) PC() uint64 {
	return t.pc
}

// IsTracing reports whether the Tracer has a Sync.Start anchor and is
// actively walking (as opposed to Idle, waiting for one).
func (t *Tracer) IsTracing() bool {
	return t.state != stateIdle
}

// Features returns the instruction-trace option set the Tracer interprets
// payloads against.
func (t *Tracer) Features() unit.IOptions {
	return t.unit.IOptions()
}

// Binary returns the image the Tracer walks.
func (t *Tracer) Binary() riscv.BinaryImage {
	return t.image
}

// SetBinary replaces the image the Tracer walks, e.g. once a loader resolves
// a previously-unmapped shared object.
func (t *Tracer) SetBinary(image riscv.BinaryImage) {
	t.image = image
}

// Reset drops all synchronization state, returning the Tracer to Idle. The
// image and unit are kept.
func (t *Tracer) Reset() {
	t.state = stateIdle
	t.pc = 0
	t.privilege = 0
	t.context = 0
	t.qualStatus = packet.QualNoChange
	t.returnStack = nil
	t.jumpTargets.reset()
}

// Process consumes one decoded payload and returns the trace items (Retire,
// Trap, Context) the walk produced. An error leaves the Tracer's internal
// state exactly as it stood after the last successfully retired instruction,
// so a caller may report the error and resynchronize on the next Sync.Start.
func (t *Tracer) Process(p packet.Payload) ([]Item, error) {
	if t.state == stateIdle && p.Kind != packet.KindSyncStart {
		return nil, ErrNotTracing
	}

	switch p.Kind {
	case packet.KindSyncStart:
		return t.processSyncStart(p.SyncStart)
	case packet.KindSyncTrap:
		return t.processSyncTrap(p.SyncTrap)
	case packet.KindSyncContext:
		return t.processSyncContext(p.SyncContext)
	case packet.KindSyncSupport:
		return t.processSyncSupport(p.SyncSupport)
	case packet.KindBranch:
		return t.runBranches(p.Branch.Map, p.Branch.HasAddress, p.Branch.AddressInfo)
	case packet.KindAddressInfo:
		return t.runBranches(packet.BranchMap{}, true, p.AddressInfo)
	case packet.KindExtension:
		return t.processExtension(p.Extension)
	default:
		return nil, ErrUnexpectedPayload
	}
}

func (t *Tracer) processSyncStart(s packet.SyncStart) ([]Item, error) {
	if t.state == stateIdle {
		t.pc = s.Address
		t.privilege = s.Privilege
		t.context = s.Context
		t.returnStack = nil
		t.jumpTargets.reset()
		t.state = stateActive
		return []Item{{Kind: ItemContext, Context: Context{Privilege: t.privilege, Context: t.context}}}, nil
	}

	// Resynchronizing mid-trace: a fresh Sync.Start discards any
	// in-flight call-stack prediction and snaps the PC, but must not
	// manufacture a Context item when privilege/context didn't actually
	// change underneath it.
	t.returnStack = nil
	t.pc = s.Address
	changed := t.privilege != s.Privilege || t.context != s.Context
	t.privilege = s.Privilege
	t.context = s.Context
	if !changed {
		return nil, nil
	}
	return []Item{{Kind: ItemContext, Context: Context{Privilege: t.privilege, Context: t.context}}}, nil
}

func (t *Tracer) processSyncContext(s packet.SyncContext) ([]Item, error) {
	t.privilege = s.Privilege
	t.context = s.Context
	return []Item{{Kind: ItemContext, Context: Context{Privilege: t.privilege, Context: t.context}}}, nil
}

func (t *Tracer) processSyncSupport(s packet.SyncSupport) ([]Item, error) {
	t.qualStatus = s.QualStatus
	if s.QualStatus == packet.QualNotTracing {
		t.state = stateIdle
	}
	return nil, nil
}

// processSyncTrap handles both trap reports a Sync.Trap payload can carry,
// distinguished by Thaddr. With Thaddr clear, this is trap entry: walk
// sequentially (a conditional branch or another discontinuity appearing
// before the fault is a protocol error, since nothing here could resolve
// it) until the instruction that caused the trap retires, then emit the
// Trap item. With Thaddr set, this instead reports the target of a trap
// return (mret/sret/uret) that runBranches deferred - walk to that
// instruction and just relocate the PC, with no new Trap item.
//
// The reported Epc is the PC the walk stood at before this call - the
// previously-known PC - not the trap packet's own address field, which
// carries the handler target instead. This also gives the correct result
// for two traps reported back to back with no instruction retired between
// them: the second Trap's Epc is still the PC the first trap left behind,
// because nothing moved it in between.
func (t *Tracer) processSyncTrap(s packet.SyncTrap) ([]Item, error) {
	if s.Thaddr {
		return t.walkToTrapReturn(s)
	}

	epc := t.pc
	var items []Item
	var trapInfo riscv.Info

	// The forward walk to find the faulting ecall/ebreak only exists to
	// synthesize a cause/interrupt pair implicit-exception mode omits from
	// the packet itself. With the option off, Cause/Interrupt arrive
	// explicit in s and the walk must not run - otherwise a page fault or
	// any other synchronous exception whose faulting instruction isn't
	// ecall/ebreak would have its faulting (unretired) instruction wrongly
	// retired before the walk gives up (spec.md §4.5.1: a thaddr=0 trap
	// with no implicit-exception cause-synthesis to do is just "emit a Trap
	// with epc = current PC").
	if !s.Interrupt && t.unit.IOptions().ImplicitException {
		for {
			info, err := t.fetchDecode()
			if err != nil {
				return items, fmt.Errorf("%w: %v", ErrNoInstruction, err)
			}
			if info.EcallOrEbreak {
				items = append(items, t.retireItem(info))
				trapInfo = info
				break
			}
			if info.Branch || info.UninferableDiscontinuity() {
				return items, ErrInconsistentTrace
			}
			items = append(items, t.retireItem(info))
			t.advance(info.Size)
		}
	}

	cause := s.Cause
	interrupt := s.Interrupt
	if t.unit.IOptions().ImplicitException {
		interrupt = false
		if trapInfo.Mnemonic == "ebreak" {
			cause = causeBreakpoint
		} else {
			cause = envCallCause(t.privilege)
		}
	}

	items = append(items, Item{Kind: ItemTrap, Trap: Trap{
		Epc:       epc,
		Cause:     cause,
		Tval:      s.Tval,
		Interrupt: interrupt,
		Privilege: t.privilege,
	}})

	t.privilege = s.Privilege
	t.pc = s.Address
	return items, nil
}

func (t *Tracer) walkToTrapReturn(s packet.SyncTrap) ([]Item, error) {
	var items []Item
	for {
		info, err := t.fetchDecode()
		if err != nil {
			return items, fmt.Errorf("%w: %v", ErrNoInstruction, err)
		}
		if info.TrapReturn {
			items = append(items, t.retireItem(info))
			break
		}
		if info.Branch || info.UninferableJump || info.EcallOrEbreak {
			return items, ErrInconsistentTrace
		}
		items = append(items, t.retireItem(info))
		t.advance(info.Size)
	}

	t.privilege = s.Privilege
	t.pc = s.Address
	return items, nil
}

func (t *Tracer) processExtension(e packet.Extension) ([]Item, error) {
	switch e.ExtKind {
	case packet.ExtBranchPrediction:
		if !t.unit.IOptions().BranchPrediction {
			return nil, ErrUnexpectedPayload
		}
		// A predictor-count extension stands in for a run of branch
		// outcomes the encoder's own predictor got right; replaying it
		// would require modeling that predictor, which this tracer
		// doesn't do.
		return nil, fmt.Errorf("%w: branch-prediction replay is not supported", ErrUnexpectedPayload)

	case packet.ExtJumpTargetIndex:
		if !t.unit.IOptions().JumpTargetCache {
			return nil, ErrUnexpectedPayload
		}
		target, ok := t.jumpTargets.lookup(e.JumpTargetIndex)
		if !ok {
			return nil, fmt.Errorf("%w: unknown jump-target-cache index %d", ErrUnexpectedPayload, e.JumpTargetIndex)
		}
		return t.runBranches(packet.BranchMap{}, true, packet.AddressInfo{Address: target})

	default:
		return nil, ErrUnexpectedPayload
	}
}

// runBranches walks forward from the current PC, retiring every instruction
// that needs no further information (ordinary instructions, inferable
// jumps, calls, and returns resolved implicitly from the return stack) and
// consuming one outcome bit from branches per conditional branch retired.
//
// The walk stops - without retiring the instruction it stopped on - the
// moment it reaches something this payload cannot resolve: a conditional
// branch with no outcome bits left, or an uninferable jump with no implicit
// return available and hasAddr false. Leaving the PC and that instruction
// unretired means the next payload's walk simply re-decodes it and finishes
// the job; nothing is double-counted or lost across the call boundary.
//
// A trap-return instruction or an ecall/ebreak also stops the walk, deferred
// entirely to Tracer.Process's Sync.Trap handling - these never get an
// address or branch outcome from this payload family, only a Sync.Trap
// report naming them explicitly.
func (t *Tracer) runBranches(branches packet.BranchMap, hasAddr bool, addr packet.AddressInfo) ([]Item, error) {
	var items []Item

	for {
		info, err := t.fetchDecode()
		if err != nil {
			return items, fmt.Errorf("%w: %v", ErrNoInstruction, err)
		}

		switch {
		case info.Branch:
			taken, ok := branches.Pop()
			if !ok {
				// The payload stopped here with nothing left to retire. If
				// it claimed updiscon - "the reported address resolves an
				// uninferable discontinuity" - that claim is false: a
				// conditional branch is inferable once its outcome is
				// known, never an uninferable discontinuity (spec.md §8,
				// "updiscon at a PC whose instruction is not uninferable").
				if hasAddr && addr.Updiscon {
					return items, ErrInconsistentTrace
				}
				return items, nil
			}
			items = append(items, t.retireItem(info))
			if taken {
				t.advanceImmediate(info.Immediate)
			} else {
				t.advance(info.Size)
			}

		case info.InferableJump:
			items = append(items, t.retireItem(info))
			if info.Call {
				t.pushReturn(info)
			}
			t.advanceImmediate(info.Immediate)

		case info.TrapReturn, info.EcallOrEbreak:
			if hasAddr {
				return items, ErrInconsistentTrace
			}
			return items, nil

		case info.UninferableJump:
			target, resolved, err := t.resolveDiscontinuity(info, hasAddr, addr)
			if err != nil {
				return items, nil
			}
			items = append(items, t.retireItem(info))
			if info.Call {
				t.pushReturn(info)
			}
			t.pc = target
			if resolved {
				if !branches.Empty() {
					return items, ErrInconsistentTrace
				}
				return items, nil
			}

		default:
			items = append(items, t.retireItem(info))
			t.advance(info.Size)
		}
	}
}

// resolveDiscontinuity determines the target of an uninferable jump. It
// prefers popping the implicit return stack when the option is enabled and
// the instruction is a return - but only when the call-stack depth the
// tracer has built up agrees with what the encoder reported (irdepth is
// otherwise unrelated to the jump-target cache; see state.go). A depth
// mismatch means the encoder didn't trust its own shadow stack at this
// point, so the explicit address wins instead. resolved reports whether
// addr was used, which ends the current run; err is ErrUnexpectedPayload
// when neither mechanism can resolve the jump, meaning the caller should
// stop the walk and await a payload that can.
func (t *Tracer) resolveDiscontinuity(info riscv.Info, hasAddr bool, addr packet.AddressInfo) (target uint64, resolved bool, err error) {
	if info.Return && t.unit.IOptions().ImplicitReturn && len(t.returnStack) > 0 {
		depthReported := hasAddr && addr.IrReport
		depthOK := !depthReported || addr.IrDepth == uint32(len(t.returnStack))
		if depthOK {
			top := t.returnStack[len(t.returnStack)-1]
			t.returnStack = t.returnStack[:len(t.returnStack)-1]
			return top, false, nil
		}
	}

	if hasAddr {
		target = t.resolveAddress(addr)
		t.jumpTargets.remember(target)
		return target, true, nil
	}

	return 0, false, ErrUnexpectedPayload
}

func (t *Tracer) pushReturn(info riscv.Info) {
	t.returnStack = append(t.returnStack, t.unit.Params().MaskAddress(t.pc+uint64(info.Size)))
}

func (t *Tracer) resolveAddress(addr packet.AddressInfo) uint64 {
	p := t.unit.Params()
	if t.unit.IOptions().FullAddress {
		return addr.Address
	}
	delta := signExtend(addr.Address, p.IAddressWidth)
	return p.MaskAddress(uint64(int64(t.pc) + delta))
}

func (t *Tracer) advance(size int) {
	t.pc = t.unit.Params().MaskAddress(t.pc + uint64(size))
}

func (t *Tracer) advanceImmediate(imm int64) {
	t.pc = t.unit.Params().MaskAddress(uint64(int64(t.pc) + imm))
}

func (t *Tracer) fetchDecode() (riscv.Info, error) {
	buf, err := t.image.Fetch(t.pc)
	if err != nil {
		return riscv.Info{}, err
	}
	return riscv.Decode(buf, t.base)
}

func (t *Tracer) retireItem(info riscv.Info) Item {
	return Item{Kind: ItemRetire, Retire: Retire{PC: t.pc, Info: info}}
}

// signExtend interprets the low width bits of v as a two's-complement
// signed integer.
func signExtend(v uint64, width int) int64 {
	if width <= 0 || width >= 64 {
		return int64(v)
	}
	shift := 64 - width
	return int64(v<<shift) >> shift
}
