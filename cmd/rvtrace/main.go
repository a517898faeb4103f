// Command rvtrace decodes an E-Trace instruction-trace capture into a
// retired-PC log, or inspects a capture's raw packet structure.
package main

import (
	"os"

	"github.com/retroenv/rvtrace/buildinfo"
	"github.com/retroenv/rvtrace/internal/cli"
)

// version, commit and date are set by the release build via -ldflags.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := cli.NewCommand("rvtrace", "RISC-V efficient-trace decoder")
	cmd.SetVersion(buildinfo.Version(version, commit, date))

	cmd.AddSubcommand("decode", "decode a trace capture into a retired-PC log", func(args []string) int {
		return runDecode(args, os.Stdout, os.Stderr)
	})
	cmd.AddSubcommand("inspect", "dump packet kinds and fields from a raw capture", func(args []string) int {
		return runInspect(args, os.Stdout, os.Stderr)
	})

	return cmd.Execute(args)
}
