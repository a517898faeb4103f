package packet

import "errors"

// Sentinel errors. These correspond to the *Framing* and *Payload* error
// kinds; *Binary* and *Protocol* kinds belong to the riscv and trace
// packages respectively.
var (
	ErrBufferTooSmall    = errors.New("packet: buffer too small")
	ErrPayloadTooBig     = errors.New("packet: payload exceeds declared length")
	ErrInvalidField      = errors.New("packet: field value out of range")
	ErrUnknownTraceType  = errors.New("packet: unrecognized trace_type")
	ErrResidueNonZero    = errors.New("packet: residual payload bits are non-zero")
)
