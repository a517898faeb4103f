package log

import (
	"fmt"
	"log/slog"
)

// A Field is a marshaling operation used to add a key-value pair to a
// logger's context. Fields are lazily marshaled by slog, so it's
// inexpensive to add them to disabled debug-level log statements.
type Field = slog.Attr

// Err constructs a Field carrying an error under the "error" key.
func Err(err error) Field {
	return slog.Any("error", err)
}

// Uint64 constructs a Field with the given key and value - the pc/address
// fields the tracer logs never fit in a signed int.
func Uint64(key string, val uint64) Field {
	return slog.Uint64(key, val)
}

// Stringer constructs a Field with the given key and value, e.g. a
// packet.Kind or other Stringer the trace domain logs by name.
func Stringer(key string, val fmt.Stringer) Field {
	return slog.Any(key, val)
}
