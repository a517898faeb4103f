package session

import (
	"errors"
	"fmt"

	"github.com/retroenv/rvtrace/bitstream"
	"github.com/retroenv/rvtrace/internal/log"
	"github.com/retroenv/rvtrace/packet"
	"github.com/retroenv/rvtrace/riscv"
	"github.com/retroenv/rvtrace/trace"
	"github.com/retroenv/rvtrace/unit"
)

// Framing selects which of the two packet envelopes a capture is wrapped
// in (spec.md §4.3): the SMI header, or the RISC-V unformatted
// encapsulation.
type Framing int

const (
	FramingSMI Framing = iota
	FramingEncapsulation
)

func (f Framing) String() string {
	switch f {
	case FramingSMI:
		return "smi"
	case FramingEncapsulation:
		return "encapsulation"
	default:
		return "unknown"
	}
}

// Session drives a trace.Tracer from a framed packet stream: decode one
// envelope, convert its payload, feed it to the tracer, repeat.
type Session struct {
	unit    unit.Unit
	framing Framing
	tracer  *trace.Tracer
	log     *log.Logger
}

// New builds a Session over image, decoding instructions against base and
// packets against u's field widths and framing. A nil logger gets a
// package default.
func New(image riscv.BinaryImage, base riscv.BaseSet, u unit.Unit, framing Framing, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New()
	}
	return &Session{
		unit:    u,
		framing: framing,
		tracer:  trace.New(image, base, u),
		log:     logger.Named("session"),
	}
}

// Tracer returns the Session's underlying Tracer, for callers that need to
// inspect or reset state between runs.
func (s *Session) Tracer() *trace.Tracer {
	return s.tracer
}

// Run decodes every envelope carried by dec in framing order, feeding each
// instruction-trace payload found to the tracer and accumulating the items
// it retires. It stops cleanly when dec runs out of full packets (trailing
// padding shorter than another header is not an error), or at the first
// decode/trace error, returning whatever items were collected up to that
// point alongside the error.
func (s *Session) Run(dec *bitstream.Decoder) ([]trace.Item, error) {
	var items []trace.Item

	for dec.BitsLeft() > 0 {
		payload, ok, err := s.nextPayload(dec)
		if err != nil {
			if errors.Is(err, bitstream.ErrBufferTooSmall) {
				break
			}
			s.log.Warn("packet decode failed", log.Err(err), log.Uint64("pc", s.tracer.PC()))
			return items, fmt.Errorf("session: decoding packet: %w", err)
		}
		if !ok {
			continue // idle/alignment encapsulation packet: no payload to trace
		}

		got, err := s.tracer.Process(payload)
		items = append(items, got...)
		if err != nil {
			s.log.Warn("trace step failed",
				log.Err(err),
				log.Uint64("pc", s.tracer.PC()),
				log.Stringer("payload", payload.Kind),
			)
			return items, fmt.Errorf("session: processing %s payload: %w", payload.Kind, err)
		}
	}

	return items, nil
}

// nextPayload decodes one envelope and, if it carries an instruction-trace
// payload, converts it. ok is false for an encapsulation idle/alignment
// packet, which carries no payload at all.
func (s *Session) nextPayload(dec *bitstream.Decoder) (packet.Payload, bool, error) {
	switch s.framing {
	case FramingSMI:
		pkt, err := packet.DecodeSMI(dec, s.unit)
		if err != nil {
			return packet.Payload{}, false, err
		}
		p, err := packet.DecodePayload(pkt.Payload, s.unit)
		if err != nil {
			return packet.Payload{}, false, err
		}
		return p, true, nil

	case FramingEncapsulation:
		env, err := packet.DecodeEnvelope(dec, s.unit)
		if err != nil {
			return packet.Payload{}, false, err
		}
		if env.Flavor != packet.FlavorOrdinary {
			return packet.Payload{}, false, nil
		}
		p, err := packet.DecodePayload(env.Payload, s.unit)
		if err != nil {
			return packet.Payload{}, false, err
		}
		return p, true, nil

	default:
		return packet.Payload{}, false, ErrUnknownFraming
	}
}

// Decode is a one-shot convenience wrapper: build a Session over image and
// u, run it across data under framing, and return the retired item stream.
// The stream is expected to open with a Sync.Start payload, as any fresh
// capture does.
func Decode(data []byte, image riscv.BinaryImage, base riscv.BaseSet, u unit.Unit, framing Framing) ([]trace.Item, error) {
	s := New(image, base, u, framing, nil)
	return s.Run(bitstream.New(data))
}
