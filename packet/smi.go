package packet

import (
	"fmt"

	"github.com/retroenv/rvtrace/bitstream"
	"github.com/retroenv/rvtrace/unit"
)

// SMIHeader is the fixed-layout header of an SMI packet: trace_type, hart
// id, a time tag, and a byte length for the payload that follows.
type SMIHeader struct {
	TraceType uint8
	Hart      uint32
	TimeTag   uint64
	Length    int
}

// SMIPacket is a decoded SMI envelope: the header plus a scoped
// sub-decoder bound to the payload bits. Convert it to a concrete Payload
// with DecodePayload once it's known whether the trace_type denotes an
// instruction-trace payload.
type SMIPacket struct {
	Header  SMIHeader
	Payload *bitstream.Decoder
}

// smiHartWidth and smiLengthWidth are fixed per the SMI wire format; only
// trace_type and time_tag widths vary per unit.
const (
	smiHartWidth   = 8
	smiLengthWidth = 16
)

// DecodeSMI reads one SMI packet envelope from dec. The cursor advances
// past the full declared record length regardless of whether the payload
// is subsequently converted, matching spec.md §4.3's envelope contract.
func DecodeSMI(dec *bitstream.Decoder, u unit.Unit) (SMIPacket, error) {
	p := u.Params()

	traceType, err := dec.ReadUint(p.F0SWidth)
	if err != nil {
		return SMIPacket{}, fmt.Errorf("packet: read smi trace_type: %w", err)
	}
	hart, err := dec.ReadUint(smiHartWidth)
	if err != nil {
		return SMIPacket{}, fmt.Errorf("packet: read smi hart: %w", err)
	}
	timeTag, err := dec.ReadUint(p.TimeWidth)
	if err != nil {
		return SMIPacket{}, fmt.Errorf("packet: read smi time_tag: %w", err)
	}
	length, err := dec.ReadUint(smiLengthWidth)
	if err != nil {
		return SMIPacket{}, fmt.Errorf("packet: read smi length: %w", err)
	}

	sub, err := dec.SplitOffTo(int(length))
	if err != nil {
		return SMIPacket{}, fmt.Errorf("%w: smi payload of %d bytes: %v", ErrPayloadTooBig, length, err)
	}

	return SMIPacket{
		Header: SMIHeader{
			TraceType: uint8(traceType),
			Hart:      uint32(hart),
			TimeTag:   timeTag,
			Length:    int(length),
		},
		Payload: sub,
	}, nil
}
