package packet

import (
	"fmt"

	"github.com/retroenv/rvtrace/bitstream"
	"github.com/retroenv/rvtrace/unit"
)

// DecodePayload reads one instruction-trace payload from dec, using u's
// field widths and options to interpret it. dec is expected to be a
// scoped sub-decoder carved out by an envelope (SMI or encapsulation);
// DecodePayload does not itself bound the read to a packet length.
func DecodePayload(dec *bitstream.Decoder, u unit.Unit) (Payload, error) {
	raw, err := dec.ReadUint(2)
	if err != nil {
		return Payload{}, fmt.Errorf("packet: read format: %w", err)
	}

	switch format(raw) {
	case formatExtension:
		return decodeExtension(dec, u)
	case formatAddressInfo:
		info, err := decodeAddressInfo(dec, u)
		if err != nil {
			return Payload{}, err
		}
		return Payload{Kind: KindAddressInfo, AddressInfo: info}, nil
	case formatBranch:
		return decodeBranch(dec, u)
	case formatSync:
		return decodeSync(dec, u)
	default:
		return Payload{}, ErrUnknownTraceType
	}
}

func decodeAddressInfo(dec *bitstream.Decoder, u unit.Unit) (AddressInfo, error) {
	p := u.Params()

	var addr uint64
	if u.IOptions().FullAddress {
		v, err := dec.ReadUint(p.IAddressWidth)
		if err != nil {
			return AddressInfo{}, fmt.Errorf("packet: read address: %w", err)
		}
		addr = p.MaskAddress(v)
	} else {
		v, err := dec.ReadInt(p.IAddressWidth)
		if err != nil {
			return AddressInfo{}, fmt.Errorf("packet: read address delta: %w", err)
		}
		addr = p.MaskAddress(uint64(v))
	}

	notify, err := dec.ReadUint(1)
	if err != nil {
		return AddressInfo{}, fmt.Errorf("packet: read notify: %w", err)
	}
	updiscon, err := dec.ReadUint(1)
	if err != nil {
		return AddressInfo{}, fmt.Errorf("packet: read updiscon: %w", err)
	}
	irreport, err := dec.ReadUint(1)
	if err != nil {
		return AddressInfo{}, fmt.Errorf("packet: read irreport: %w", err)
	}

	var irdepth uint64
	if irreport != 0 {
		irdepth, err = dec.ReadUint(8)
		if err != nil {
			return AddressInfo{}, fmt.Errorf("packet: read irdepth: %w", err)
		}
	}

	return AddressInfo{
		Address:  addr,
		Notify:   notify != 0,
		Updiscon: updiscon != 0,
		IrReport: irreport != 0,
		IrDepth:  uint32(irdepth),
	}, nil
}

func decodeBranch(dec *bitstream.Decoder, u unit.Unit) (Payload, error) {
	p := u.Params()

	count, err := dec.ReadUint(p.BranchCountWidth)
	if err != nil {
		return Payload{}, fmt.Errorf("packet: read branch count: %w", err)
	}
	if count > MaxBranchMap {
		return Payload{}, fmt.Errorf("%w: branch count %d exceeds %d", ErrInvalidField, count, MaxBranchMap)
	}

	var bits uint64
	if count > 0 {
		bits, err = dec.ReadUint(int(count))
		if err != nil {
			return Payload{}, fmt.Errorf("packet: read branch map: %w", err)
		}
	}
	bmap, err := PushN(bits, int(count))
	if err != nil {
		return Payload{}, err
	}

	hasAddr, err := dec.ReadUint(1)
	if err != nil {
		return Payload{}, fmt.Errorf("packet: read branch has-address flag: %w", err)
	}

	b := Branch{Map: bmap}
	if hasAddr != 0 {
		info, err := decodeAddressInfo(dec, u)
		if err != nil {
			return Payload{}, err
		}
		b.HasAddress = true
		b.AddressInfo = info
	}

	return Payload{Kind: KindBranch, Branch: b}, nil
}

func decodeExtension(dec *bitstream.Decoder, u unit.Unit) (Payload, error) {
	p := u.Params()

	kind, err := dec.ReadUint(1)
	if err != nil {
		return Payload{}, fmt.Errorf("packet: read extension kind: %w", err)
	}

	if kind == uint64(ExtBranchPrediction) {
		v, err := dec.ReadUint(p.BPredSize)
		if err != nil {
			return Payload{}, fmt.Errorf("packet: read branch-prediction count: %w", err)
		}
		return Payload{Kind: KindExtension, Extension: Extension{
			ExtKind:         ExtBranchPrediction,
			BranchPredCount: uint32(v),
		}}, nil
	}

	v, err := dec.ReadUint(p.CacheSize)
	if err != nil {
		return Payload{}, fmt.Errorf("packet: read jump-target index: %w", err)
	}
	return Payload{Kind: KindExtension, Extension: Extension{
		ExtKind:         ExtJumpTargetIndex,
		JumpTargetIndex: uint32(v),
	}}, nil
}

func decodeSync(dec *bitstream.Decoder, u unit.Unit) (Payload, error) {
	p := u.Params()

	sub, err := dec.ReadUint(2)
	if err != nil {
		return Payload{}, fmt.Errorf("packet: read sync subformat: %w", err)
	}

	switch syncSubformat(sub) {
	case subformatStart:
		addr, err := dec.ReadUint(p.IAddressWidth)
		if err != nil {
			return Payload{}, fmt.Errorf("packet: read sync.start address: %w", err)
		}
		priv, err := dec.ReadUint(p.PrivilegeWidth)
		if err != nil {
			return Payload{}, fmt.Errorf("packet: read sync.start privilege: %w", err)
		}
		branchFlag, err := dec.ReadUint(1)
		if err != nil {
			return Payload{}, fmt.Errorf("packet: read sync.start branch flag: %w", err)
		}
		ctx, err := dec.ReadUint(p.ContextWidth)
		if err != nil {
			return Payload{}, fmt.Errorf("packet: read sync.start context: %w", err)
		}
		return Payload{Kind: KindSyncStart, SyncStart: SyncStart{
			Address:    p.MaskAddress(addr),
			Privilege:  uint8(priv),
			BranchFlag: branchFlag != 0,
			Context:    ctx,
		}}, nil

	case subformatTrap:
		addr, err := dec.ReadUint(p.IAddressWidth)
		if err != nil {
			return Payload{}, fmt.Errorf("packet: read sync.trap address: %w", err)
		}
		thaddr, err := dec.ReadUint(1)
		if err != nil {
			return Payload{}, fmt.Errorf("packet: read sync.trap thaddr: %w", err)
		}

		var cause uint64
		var interrupt bool
		if !u.IOptions().ImplicitException {
			interruptBit, err := dec.ReadUint(1)
			if err != nil {
				return Payload{}, fmt.Errorf("packet: read sync.trap interrupt: %w", err)
			}
			interrupt = interruptBit != 0
			cause, err = dec.ReadUint(p.EcauseWidth)
			if err != nil {
				return Payload{}, fmt.Errorf("packet: read sync.trap cause: %w", err)
			}
		}

		tval, err := dec.ReadUint(p.IAddressWidth)
		if err != nil {
			return Payload{}, fmt.Errorf("packet: read sync.trap tval: %w", err)
		}
		priv, err := dec.ReadUint(p.PrivilegeWidth)
		if err != nil {
			return Payload{}, fmt.Errorf("packet: read sync.trap privilege: %w", err)
		}

		return Payload{Kind: KindSyncTrap, SyncTrap: SyncTrap{
			Address:   p.MaskAddress(addr),
			Cause:     cause,
			Interrupt: interrupt,
			Tval:      p.MaskAddress(tval),
			Privilege: uint8(priv),
			Thaddr:    thaddr != 0,
		}}, nil

	case subformatContext:
		priv, err := dec.ReadUint(p.PrivilegeWidth)
		if err != nil {
			return Payload{}, fmt.Errorf("packet: read sync.context privilege: %w", err)
		}
		ctx, err := dec.ReadUint(p.ContextWidth)
		if err != nil {
			return Payload{}, fmt.Errorf("packet: read sync.context context: %w", err)
		}
		return Payload{Kind: KindSyncContext, SyncContext: SyncContext{
			Privilege: uint8(priv),
			Context:   ctx,
		}}, nil

	case subformatSupport:
		mode, err := dec.ReadUint(4)
		if err != nil {
			return Payload{}, fmt.Errorf("packet: read sync.support encoder mode: %w", err)
		}
		qual, err := dec.ReadUint(2)
		if err != nil {
			return Payload{}, fmt.Errorf("packet: read sync.support qual status: %w", err)
		}

		opts, err := decodeIOptions(dec)
		if err != nil {
			return Payload{}, err
		}

		return Payload{Kind: KindSyncSupport, SyncSupport: SyncSupport{
			EncoderMode: uint8(mode),
			QualStatus:  QualStatus(qual),
			IOptions:    opts,
		}}, nil

	default:
		return Payload{}, ErrUnknownTraceType
	}
}

// decodeIOptions reads the fixed-order 6-bit IOptions snapshot a
// Sync.Support payload reports.
func decodeIOptions(dec *bitstream.Decoder) (unit.IOptions, error) {
	bits, err := dec.ReadUint(6)
	if err != nil {
		return unit.IOptions{}, fmt.Errorf("packet: read ioptions: %w", err)
	}
	return unit.IOptions{
		BranchPrediction:          bits&0x01 != 0,
		JumpTargetCache:           bits&0x02 != 0,
		ImplicitReturn:            bits&0x04 != 0,
		ImplicitException:         bits&0x08 != 0,
		SequentiallyInferredJumps: bits&0x10 != 0,
		FullAddress:               bits&0x20 != 0,
	}, nil
}
