package riscv

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Decode and BinaryImage implementations.
var (
	// ErrBufferTooSmall is returned when fewer bytes are available than the
	// instruction's encoded size requires.
	ErrBufferTooSmall = errors.New("riscv: buffer too small for instruction")

	// ErrReservedEncoding is returned for an instruction-length prefix this
	// package does not support decoding (the >=48-bit extended encodings).
	ErrReservedEncoding = errors.New("riscv: reserved or unsupported instruction length encoding")
)

// MissError is returned by a BinaryImage when an address is simply not
// covered by that image - distinct from a decode failure at an address the
// image does cover. Combinators (Fallback, MultiFallback) use errors.As to
// tell the two apart: they fall through to the next image on a MissError,
// but propagate any other error immediately.
type MissError struct {
	Addr uint64
}

func (e *MissError) Error() string {
	return fmt.Sprintf("riscv: no instruction mapped at address %#x", e.Addr)
}

// IsMiss reports whether err is (or wraps) a MissError.
func IsMiss(err error) bool {
	var miss *MissError
	return errors.As(err, &miss)
}
