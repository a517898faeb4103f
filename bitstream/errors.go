package bitstream

import "errors"

// Sentinel errors returned by Decoder operations.
var (
	// ErrBufferTooSmall is returned when a read or split would consume more
	// bits than remain in the buffer.
	ErrBufferTooSmall = errors.New("bitstream: buffer too small for requested read")

	// ErrInvalidWidth is returned for a requested bit width outside [1, 64].
	ErrInvalidWidth = errors.New("bitstream: bit width must be in range [1, 64]")
)
