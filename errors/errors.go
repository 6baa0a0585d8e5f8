// Package errors defines all exported error sentinels for the parsort library.
//
// This is the single source of truth for error values. The top-level
// parsort package wraps these with call-specific detail, so callers should
// compare with errors.Is rather than ==.
package errors

import "errors"

// Argument errors
var (
	ErrNilInput       = errors.New("parsort: required argument is nil")
	ErrOutOfRange     = errors.New("parsort: index range outside array bounds")
	ErrLengthMismatch = errors.New("parsort: destination length does not match source length")
	ErrInvalidDigit   = errors.New("parsort: digit shift outside key width")
)

// Configuration errors
var (
	ErrInvalidConfig = errors.New("parsort: invalid configuration")
)

// Resource errors
var (
	ErrAllocation = errors.New("parsort: scratch buffer allocation failed")
)
