// Package packet decodes the two E-Trace packet envelopes (SMI and the
// RISC-V unformatted encapsulation) and the instruction-trace payload
// variants they carry: Sync.{Start,Trap,Context,Support}, Branch,
// AddressInfo, and Extension. Field widths come from a unit.Unit; the
// package never hardcodes a width that varies by encoder configuration.
//
// Payloads are modeled as a single tagged struct (Payload) with a Kind
// discriminator, following the intra-packet-data shape of ETMv4's
// TracePacket rather than a Go interface per variant - callers switch
// exhaustively on Kind and only read the fields that kind populates.
package packet
