package riscv

import "encoding/binary"

// Decode classifies the instruction at the start of buf, which must hold at
// least the bytes of that one instruction (callers typically slice from a
// BinaryImage lookup). base selects which RV32/RV64-specific encodings
// (C.JAL vs C.ADDIW) apply.
//
// Decode never executes the instruction; Info carries only the predicates
// the tracer's state machine needs to walk the image.
func Decode(buf []byte, base BaseSet) (Info, error) {
	if len(buf) < 2 {
		return Info{}, ErrBufferTooSmall
	}

	size, ok := instructionLength(buf[0])
	if !ok {
		return Info{}, ErrReservedEncoding
	}
	if len(buf) < size {
		return Info{}, ErrBufferTooSmall
	}

	switch size {
	case 2:
		word := binary.LittleEndian.Uint16(buf)
		return decodeCompressed(word, base), nil
	case 4:
		word := binary.LittleEndian.Uint32(buf)
		return decode32(word), nil
	default:
		return Info{}, ErrReservedEncoding
	}
}

// instructionLength sniffs the encoded length of an instruction from the
// low bits of its first byte, per riscv-spec-v2.2 Figure 1.1. Only 16-bit
// (compressed) and 32-bit lengths are supported; everything >=48 bits
// reports ok=false via ErrReservedEncoding.
func instructionLength(b0 byte) (size int, ok bool) {
	switch {
	case b0&0x3 != 0x3:
		return 2, true
	case b0&0x1f != 0x1f:
		return 4, true
	default:
		return 0, false
	}
}
