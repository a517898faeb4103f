package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/retroenv/rvtrace/bitstream"
	"github.com/retroenv/rvtrace/internal/cli"
	"github.com/retroenv/rvtrace/internal/log"
	"github.com/retroenv/rvtrace/riscv"
	"github.com/retroenv/rvtrace/session"
	"github.com/retroenv/rvtrace/trace"
)

type decodeFlags struct {
	Image string `flag:"image" usage:"raw binary image backing the program under trace" required:"true"`
	Base  string `flag:"base" usage:"load address of the image (decimal or 0x-hex)" default:"0"`
	ISA   string `flag:"isa" usage:"base integer ISA the image was assembled for (rv32, rv64)" default:"rv64"`
}

type decodePositional struct {
	Trace string `arg:"positional" usage:"packet-stream capture file" required:"true"`
}

func runDecode(args []string, stdout, stderr io.Writer) int {
	var df decodeFlags
	var common commonOptions
	var pos decodePositional

	appCfg, err := applyAppConfig(args, &common)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fs := cli.NewFlagSet("rvtrace decode")
	fs.AddSection("Image", &df)
	fs.AddSection("Unit", &common)
	fs.AddPositional(&pos)

	if _, err := fs.Parse(args); err != nil {
		fmt.Fprintln(stderr, err)
		fs.ShowUsage()
		return 1
	}

	base, err := strconv.ParseUint(df.Base, 0, 64)
	if err != nil {
		fmt.Fprintf(stderr, "rvtrace: invalid --base %q: %v\n", df.Base, err)
		return 1
	}

	isa, err := parseISA(df.ISA)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	imageData, err := os.ReadFile(df.Image)
	if err != nil {
		fmt.Fprintf(stderr, "rvtrace: reading image %s: %v\n", df.Image, err)
		return 1
	}
	image := riscv.Segment{Base: base, Data: imageData}

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

	traceData, err := os.ReadFile(pos.Trace)
	if err != nil {
		fmt.Fprintf(stderr, "rvtrace: reading trace %s: %v\n", pos.Trace, err)
		return 1
	}

	logger := log.NewWithConfig(log.Config{
		Level:   parseLevel(appCfg.LogLevel),
		Output:  stderr,
		Handler: logHandler(appCfg.LogFormat, stderr, parseLevel(appCfg.LogLevel)),
	})
	s := session.New(image, isa, u, framing, logger)
	items, err := s.Run(bitstream.New(traceData))
	writeSpikeTrace(stdout, image, items)
	if err != nil {
		fmt.Fprintf(stderr, "rvtrace: %v\n", err)
		return 1
	}
	return 0
}

// logHandler returns a JSON slog.Handler when format is "json", or nil so
// NewWithConfig falls back to the default console handler otherwise.
func logHandler(format string, w io.Writer, level log.Level) slog.Handler {
	if format != "json" {
		return nil
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// parseLevel maps an rvtrace.conf log.level string to a log.Level,
// defaulting to InfoLevel for anything it doesn't recognize.
func parseLevel(name string) log.Level {
	switch name {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func parseISA(name string) (riscv.BaseSet, error) {
	switch name {
	case "rv64", "":
		return riscv.RV64I, nil
	case "rv32":
		return riscv.RV32I, nil
	default:
		return 0, fmt.Errorf("rvtrace: unknown isa %q (want rv32 or rv64)", name)
	}
}

// writeSpikeTrace formats items as spike's reference PC-trace format
// (spec.md §6): one line per retired instruction, "core N: <priv> <pc>
// (<hex instruction>)". Context and trap items update the tracked
// privilege level but emit no line of their own.
func writeSpikeTrace(w io.Writer, image riscv.BinaryImage, items []trace.Item) {
	var priv uint8
	for _, it := range items {
		switch it.Kind {
		case trace.ItemContext:
			priv = it.Context.Privilege
		case trace.ItemTrap:
			priv = it.Trap.Privilege
		case trace.ItemRetire:
			word := fetchWord(image, it.Retire.PC, it.Retire.Info.Size)
			fmt.Fprintf(w, "core %3d: %d %#016x (%#0*x)\n", 0, priv, it.Retire.PC, it.Retire.Info.Size*2+2, word)
		}
	}
}

// fetchWord re-reads the raw instruction bytes at pc from image for
// display purposes; the tracer itself only needs riscv.Info's predicates,
// never the encoded word.
func fetchWord(image riscv.BinaryImage, pc uint64, size int) uint64 {
	raw, err := image.Fetch(pc)
	if err != nil || len(raw) < size {
		return 0
	}
	switch size {
	case 2:
		return uint64(binary.LittleEndian.Uint16(raw[:2]))
	default:
		return uint64(binary.LittleEndian.Uint32(raw[:4]))
	}
}
