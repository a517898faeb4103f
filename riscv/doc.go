// Package riscv decodes a RISC-V instruction word into the minimal
// predicate set the tracer needs (branch? jump? call? return? trap-return?
// uninferable? immediate?) and provides the BinaryImage abstraction the
// tracer walks: given an address, look up the instruction there, or report
// a miss distinct from a decode failure.
//
// This package never executes an instruction - there is no register file,
// no memory read/write, no flags. Unlike a full CPU executor (ALU, stack,
// interrupts), riscv models only the classification a trace reconstruction
// engine needs, following an Instruction/Opcode/categories shape without
// any execution machinery (see DESIGN.md).
package riscv
