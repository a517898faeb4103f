package riscv

// decodeCompressed classifies a 16-bit RVC instruction. Register fields
// returned in Info are the raw 5-bit rd/rs1/rs2 RISC-V register numbers,
// already widened from RVC's 3-bit register encoding (x8-x15) where the
// instruction form uses it.
//
// base distinguishes C.JAL (RV32, quadrant 1, funct3 1) from C.ADDIW
// (RV64/128, same bit pattern, not a jump at all) - the two share an
// encoding and only the active base ISA disambiguates them.
func decodeCompressed(in uint16, base BaseSet) Info {
	info := Info{Size: 2, Mnemonic: "c.unknown"}

	quadrant := in & 0x3
	funct3 := in >> 13 & 0x7

	switch quadrant<<3 | funct3 {
	case 0x09: // quadrant 1, funct3 1 - C.JAL (RV32) / C.ADDIW (RV64+)
		if base == RV32I {
			info.Mnemonic = "c.jal"
			info.InferableJump = true
			info.Call = true
			info.Rd = regRA
			info.Immediate = decodeCJImm(in)
			return info
		}
		info.Mnemonic = "c.addiw"
		info.Rd = uint8(in >> 7 & 0x1f)
		return info

	case 0x0D: // quadrant 1, funct3 5 - C.J
		info.Mnemonic = "c.j"
		info.InferableJump = true
		info.Immediate = decodeCJImm(in)
		return info
	}

	// The switch above only special-cases the jump forms; everything else
	// not handled there is resolved below by the more specific bit tests,
	// since RVC's quadrant/funct3 pairing alone does not disambiguate every
	// instruction family (branches and C.LUI share funct3 values with
	// unrelated forms in other quadrants).
	switch {
	case quadrant == 0x1 && funct3 == 0x3: // C.LUI / C.ADDI16SP
		rd := uint8(in >> 7 & 0x1f)
		if rd == 2 {
			info.Mnemonic = "c.addi16sp"
			info.Rd, info.Rs1 = 2, 2
			return info
		}
		if rd == 0 {
			// Reserved/HINT encoding (nzimm=0, rd=0): not a valid C.LUI.
			info.Mnemonic = "c.hint"
			return info
		}
		raw := uint32(in>>7&0x20 | in>>2&0x1f)
		info.Mnemonic = "c.lui"
		info.UpperImmediate = true
		info.Rd = rd
		info.Immediate = signExtendImm(raw<<12, 18)
		return info

	case quadrant == 0x1 && (funct3 == 0x6 || funct3 == 0x7): // C.BEQZ / C.BNEZ
		rs1 := uint8(in>>7&0x7) + rvcRegOffset
		// offset[8|4:3|7:6|2:1|5] <- in[12|11:10|6:5|4:3|2]
		raw := uint32(in>>12&0x1)<<8 | uint32(in>>10&0x3)<<3 | uint32(in>>5&0x3)<<6 |
			uint32(in>>3&0x3)<<1 | uint32(in>>2&0x1)<<5
		info.Branch = true
		info.Rs1 = rs1
		info.Immediate = signExtendImm(raw, 9)
		if funct3 == 0x6 {
			info.Mnemonic = "c.beqz"
		} else {
			info.Mnemonic = "c.bnez"
		}
		return info

	case quadrant == 0x2 && funct3 == 0x4: // C.JR / C.MV / C.EBREAK / C.JALR / C.ADD
		rd := uint8(in >> 7 & 0x1f)
		rs2 := uint8(in >> 2 & 0x1f)
		extra := in & 0x1000
		switch {
		case extra == 0 && rs2 == 0: // C.JR
			info.Mnemonic = "c.jr"
			info.UninferableJump = true
			info.Rs1 = rd
			if isLinkRegister(rd) {
				info.Return = true
			}
			return info
		case extra == 0: // C.MV
			info.Mnemonic = "c.mv"
			info.Rd, info.Rs1, info.Rs2 = rd, 0, rs2
			return info
		case extra != 0 && rd == 0 && rs2 == 0: // C.EBREAK
			info.Mnemonic = "c.ebreak"
			info.EcallOrEbreak = true
			return info
		case extra != 0 && rs2 == 0: // C.JALR
			info.Mnemonic = "c.jalr"
			info.UninferableJump = true
			info.Call = true
			info.Rd = regRA
			info.Rs1 = rd
			return info
		default: // C.ADD
			info.Mnemonic = "c.add"
			info.Rd, info.Rs1, info.Rs2 = rd, rd, rs2
			return info
		}
	}

	return info
}

// decodeCJImm reconstructs the 11-bit C.J/C.JAL offset (riscv-spec-v2.2
// Table 12.5: imm[11|4|9:8|10|6|7|3:1|5]), sign extended and scaled to
// bytes (bit 0 is always implicitly 0).
func decodeCJImm(in uint16) int64 {
	imm := uint32(in>>2) & 0x7ff
	v := imm&0x200>>5 | imm&0x40<<4 | imm&0x5a0<<1 | imm&0x10<<3 | imm&0xe | imm&0x1<<5
	return signExtendImm(v, 12)
}

// rvcRegOffset maps RVC's 3-bit register field (x8-x15) to the full 5-bit
// register number.
const rvcRegOffset = 8
