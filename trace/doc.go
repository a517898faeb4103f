// Package trace reconstructs the instruction-by-instruction execution path
// of a hart from a stream of decoded packet.Payload values and a
// riscv.BinaryImage.
//
// The Tracer's walk loop (decode one instruction, classify it, advance the
// program counter, repeat) generalizes a CPU step loop shape
// (decode/execute/updatePC) from "execute one instruction and update PC"
// to "retire one RISC-V instruction inferred from the trace and update PC"
// - the tracer never executes anything, it only infers what must have
// executed between two reported events.
package trace
