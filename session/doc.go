// Package session wires bitstream, packet, trace, riscv and unit together
// for a caller that just wants "bytes in, retired PCs out": feed it a raw
// capture and a binary image, get back a trace.Item stream.
//
// The driving loop generalizes a "decode one instruction and execute it"
// shape into "decode one packet and feed it to the tracer."
package session
