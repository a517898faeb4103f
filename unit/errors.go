package unit

import "errors"

// ErrInvalidWidth is returned by Params.Validate when a configured field
// width is outside the range the E-Trace spec permits for it.
var ErrInvalidWidth = errors.New("unit: field width out of range")
