package riscv

// baseOpcode is the 5-bit field at bits [6:2] of a 32-bit instruction word
// (bit 1:0 are always 0b11 for a non-compressed instruction and are not
// part of the opcode). Naming and values follow riscv-spec-v2.2, Table 19.1.
type baseOpcode uint32

const (
	opLoad     baseOpcode = 0x00
	opMiscMem  baseOpcode = 0x03
	opOpImm    baseOpcode = 0x04
	opAUIPC    baseOpcode = 0x05
	opOpImm32  baseOpcode = 0x06
	opStore    baseOpcode = 0x08
	opAMO      baseOpcode = 0x0B
	opOp       baseOpcode = 0x0C
	opLUI      baseOpcode = 0x0D
	opOp32     baseOpcode = 0x0E
	opBranch   baseOpcode = 0x18
	opJALR     baseOpcode = 0x19
	opJAL      baseOpcode = 0x1B
	opSystem   baseOpcode = 0x1C
)

// decode32 classifies a 32-bit (non-compressed) instruction word.
func decode32(word uint32) Info {
	rd := uint8(word >> 7 & 0x1f)
	rs1 := uint8(word >> 15 & 0x1f)
	rs2 := uint8(word >> 20 & 0x1f)
	funct3 := word >> 12 & 0x7
	op := baseOpcode(word >> 2 & 0x1f)

	info := Info{Size: 4, Rd: rd, Rs1: rs1, Rs2: rs2}

	switch op {
	case opBranch:
		info.Mnemonic = "branch"
		info.Branch = true
		info.Immediate = signExtendImm(
			word>>19&0x1000|word<<4&0x800|word>>20&0x7e0|word>>7&0x1e, 13)
		return info

	case opJAL:
		info.Mnemonic = "jal"
		info.InferableJump = true
		info.Call = isLinkRegister(rd)
		info.Immediate = signExtendImm(
			word>>11&0x100000|word&0xff000|word>>9&0x800|word>>20&0x7fe, 21)
		return info

	case opJALR:
		info.Mnemonic = "jalr"
		if funct3 != 0 {
			// Reserved encoding - fall through as an ordinary (unknown)
			// instruction rather than misclassifying it as a jump.
			info.Mnemonic = "reserved.jalr"
			return info
		}
		info.Immediate = signExtendImm(word>>20&0xfff, 12)
		info.UninferableJump = true
		if isLinkRegister(rd) {
			info.Call = true
		}
		if rd == 0 && isLinkRegister(rs1) {
			info.Return = true
		}
		return info

	case opSystem:
		if funct3 != 0 || rd != 0 || rs1 != 0 {
			info.Mnemonic = "system"
			return info
		}
		imm := word >> 20 & 0xfff
		switch imm {
		case 0x000:
			info.Mnemonic = "ecall"
			info.EcallOrEbreak = true
		case 0x001:
			info.Mnemonic = "ebreak"
			info.EcallOrEbreak = true
		case 0x002:
			info.Mnemonic = "uret"
			info.TrapReturn = true
		case 0x102:
			info.Mnemonic = "sret"
			info.TrapReturn = true
		case 0x302:
			info.Mnemonic = "mret"
			info.TrapReturn = true
		default:
			info.Mnemonic = "system"
		}
		return info

	case opLUI:
		info.Mnemonic = "lui"
		info.UpperImmediate = true
		info.Immediate = int64(int32(word & 0xfffff000))
		return info

	case opAUIPC:
		info.Mnemonic = "auipc"
		info.UpperImmediate = true
		info.Immediate = int64(int32(word & 0xfffff000))
		return info

	case opLoad, opMiscMem, opOpImm, opOpImm32, opStore, opAMO, opOp, opOp32:
		info.Mnemonic = "base"
		return info

	default:
		info.Mnemonic = "reserved"
		return info
	}
}

// signExtendImm sign-extends the low n bits of v (already shifted into
// final bit position by the caller) as a two's-complement value.
func signExtendImm(v uint32, n int) int64 {
	shift := 32 - n
	return int64(int32(v<<shift) >> shift)
}
