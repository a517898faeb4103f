package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/rvtrace/bitstream"
	"github.com/retroenv/rvtrace/internal/cli"
	"github.com/retroenv/rvtrace/packet"
	"github.com/retroenv/rvtrace/session"
	"github.com/retroenv/rvtrace/unit"
)

type inspectPositional struct {
	Trace string `arg:"positional" usage:"packet-stream capture file" required:"true"`
}

// runInspect parses packets only, with no tracer and no binary image, and
// dumps each packet's kind and header fields - useful for debugging a
// capture that the tracer itself rejects.
func runInspect(args []string, stdout, stderr io.Writer) int {
	var common commonOptions
	var pos inspectPositional

	if _, err := applyAppConfig(args, &common); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fs := cli.NewFlagSet("rvtrace inspect")
	fs.AddSection("Unit", &common)
	fs.AddPositional(&pos)

	if _, err := fs.Parse(args); err != nil {
		fmt.Fprintln(stderr, err)
		fs.ShowUsage()
		return 1
	}

	u, err := buildUnit(common.Unit, common.AddressWidth, common.ConfigTOML)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	framing, err := parseFraming(common.Framing)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	data, err := os.ReadFile(pos.Trace)
	if err != nil {
		fmt.Fprintf(stderr, "rvtrace: reading trace %s: %v\n", pos.Trace, err)
		return 1
	}

	if err := inspectPackets(stdout, bitstream.New(data), u, framing); err != nil {
		fmt.Fprintf(stderr, "rvtrace: %v\n", err)
		return 1
	}
	return 0
}

func inspectPackets(w io.Writer, dec *bitstream.Decoder, u unit.Unit, framing session.Framing) error {
	n := 0
	for dec.BitsLeft() > 0 {
		switch framing {
		case session.FramingSMI:
			pkt, err := packet.DecodeSMI(dec, u)
			if err != nil {
				if errors.Is(err, bitstream.ErrBufferTooSmall) {
					return nil
				}
				return err
			}
			p, err := packet.DecodePayload(pkt.Payload, u)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "#%d smi hart=%d time=%d len=%d kind=%s\n",
				n, pkt.Header.Hart, pkt.Header.TimeTag, pkt.Header.Length, p.Kind)

		case session.FramingEncapsulation:
			env, err := packet.DecodeEnvelope(dec, u)
			if err != nil {
				if errors.Is(err, bitstream.ErrBufferTooSmall) {
					return nil
				}
				return err
			}
			if env.Flavor != packet.FlavorOrdinary {
				fmt.Fprintf(w, "#%d encapsulation source=%d flavor=%s\n", n, env.SourceID, flavorName(env.Flavor))
				n++
				continue
			}
			p, err := packet.DecodePayload(env.Payload, u)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "#%d encapsulation source=%d time=%d kind=%s\n",
				n, env.SourceID, env.Timestamp, p.Kind)
		}
		n++
	}
	return nil
}

func flavorName(f packet.Flavor) string {
	switch f {
	case packet.FlavorOrdinary:
		return "ordinary"
	case packet.FlavorIdle:
		return "idle"
	case packet.FlavorAlignment:
		return "alignment"
	default:
		return "unknown"
	}
}
