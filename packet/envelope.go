package packet

import (
	"fmt"

	"github.com/retroenv/rvtrace/bitstream"
	"github.com/retroenv/rvtrace/unit"
)

// Flavor is the encapsulation packet's 2-bit type tag.
type Flavor uint8

const (
	FlavorOrdinary Flavor = iota
	FlavorIdle
	FlavorAlignment
)

// Envelope is a decoded RISC-V unformatted packet encapsulation: a
// source-id, a flavor, a scoped payload sub-decoder, and an optional
// trailing timestamp present only on FlavorOrdinary packets.
type Envelope struct {
	SourceID       uint32
	Flavor         Flavor
	Payload        *bitstream.Decoder
	Timestamp      uint64
	HasTimestamp   bool
}

const envelopeFlavorWidth = 2

// encapsulationLengthWidth is the width of the payload's declared byte
// length, fixed by the encapsulation format; like SMI's length field, it
// tracks no unit parameter.
const encapsulationLengthWidth = 16

// DecodeEnvelope reads one encapsulation packet from dec. Unlike the SMI
// header, the source-id field does not require byte alignment before or
// after it - an explicit fix over the original design, where callers used
// to pad to a byte boundary before reading source-id.
func DecodeEnvelope(dec *bitstream.Decoder, u unit.Unit) (Envelope, error) {
	p := u.Params()

	sourceIDWidth := p.F0SWidth
	if sourceIDWidth <= 0 {
		sourceIDWidth = 2
	}

	sourceID, err := dec.ReadUint(sourceIDWidth)
	if err != nil {
		return Envelope{}, fmt.Errorf("packet: read source-id: %w", err)
	}
	flavorBits, err := dec.ReadUint(envelopeFlavorWidth)
	if err != nil {
		return Envelope{}, fmt.Errorf("packet: read flavor: %w", err)
	}
	length, err := dec.ReadUint(encapsulationLengthWidth)
	if err != nil {
		return Envelope{}, fmt.Errorf("packet: read length: %w", err)
	}

	sub, err := dec.SplitOffTo(int(length))
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: envelope payload of %d bytes: %v", ErrPayloadTooBig, length, err)
	}

	env := Envelope{
		SourceID: uint32(sourceID),
		Flavor:   Flavor(flavorBits),
		Payload:  sub,
	}

	if env.Flavor == FlavorOrdinary {
		ts, err := dec.ReadUint(p.TimeWidth)
		if err != nil {
			return Envelope{}, fmt.Errorf("packet: read trailing timestamp: %w", err)
		}
		env.Timestamp = ts
		env.HasTimestamp = true
	}

	return env, nil
}
