// Package log provides structured logging built on Go's slog package.
//
// It wraps slog with the console-friendly level/formatting conventions
// rvtrace's CLI and session layer share, trimmed to the surface this
// project actually drives: a Session logs pc/payload context at Warn when
// a packet or trace step fails, and rvtrace's CLI picks the handler
// (console or JSON) and level from rvtrace.conf.
//
// # Basic Usage
//
//	logger := log.New()
//	logger.Warn("packet decode failed", log.Err(err), log.Uint64("pc", pc))
//
// # Log Levels
//
//   - Trace, Debug: diagnostic detail
//   - Info: general operational messages
//   - Warn: a payload or instruction the tracer couldn't resolve
//   - Error: conditions that abort the current run
//
// # Output Formats
//
//   - Console: human-readable, via NewConsoleHandler
//   - JSON: via slog.NewJSONHandler, selected through Config.Handler
package log
