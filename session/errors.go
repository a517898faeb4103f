package session

import "errors"

// Sentinel errors returned by Session operations.
var (
	// ErrUnknownFraming is returned when a Session is built with a Framing
	// value other than FramingSMI or FramingEncapsulation.
	ErrUnknownFraming = errors.New("session: unknown packet framing")
)
