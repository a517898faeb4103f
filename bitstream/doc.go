// Package bitstream provides a bit-level cursor over a byte buffer.
//
// It is the foundation every other package in this module decodes through:
// the packet envelopes and instruction-trace payloads all read their fields
// through a Decoder. Bits are consumed little-endian within a byte (bit 0,
// the LSB, is read first) and little-endian across bytes (byte 0's bits are
// read before byte 1's), matching the E-Trace wire encoding.
//
// Decoder carries no heap state beyond the byte slice it was given and a
// pair of bit offsets, so it can be reused across packets with Reset and
// requires no allocation to read fields of up to 64 bits.
package bitstream
