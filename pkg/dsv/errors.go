// Package dsv provides error types for DSV parsing.
package dsv

import (
	"errors"
	"fmt"
)

// FormatError represents a format error with position information.
// The whole read aborts on the first format error; no partial table is
// returned.
type FormatError struct {
	// Line is the 1-based line number where the error occurred.
	// The header line counts as line 1.
	Line int
	// Byte is the offending byte. Only meaningful when Err is ErrBadByte.
	Byte byte
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *FormatError) Error() string {
	if errors.Is(e.Err, ErrBadByte) {
		return fmt.Sprintf("dsv: format error on line %d: unexpected byte 0x%02x", e.Line, e.Byte)
	}
	return fmt.Sprintf("dsv: format error on line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Common format errors
var (
	// ErrBadByte indicates a byte the scanner's automaton cannot accept
	// (a control or non-ASCII byte, or a byte sequence with no valid
	// transition, such as a sign following a digit run).
	ErrBadByte = errors.New("unexpected byte")

	// ErrFieldCount indicates a data line whose field count differs from
	// the header's column count.
	ErrFieldCount = errors.New("wrong number of fields")

	// ErrLineTooLong indicates a single line larger than the maximum
	// buffer window the token encoding can address.
	ErrLineTooLong = errors.New("line exceeds maximum buffer window")
)

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "dsv: invalid " + e.Field + ": " + e.Message
}
