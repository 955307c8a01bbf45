// Package dsv provides configurable options for DSV reading.
package dsv

import (
	"github.com/shapestone/shape-dsv/internal/scan"
	"github.com/shapestone/shape-dsv/internal/stream"
)

// ReaderOptions configures DSV reading behavior.
type ReaderOptions struct {
	// Delimiter is the field delimiter byte.
	// It must be one of '\t', ';', or '|'.
	// Default: '\t'
	Delimiter byte

	// BufferSize is the initial size of the stream's read window in bytes.
	// It bounds how much data is buffered per fill, not line length: the
	// window grows on demand when a single line exceeds it.
	// Default: 8 MiB
	BufferSize int

	// Trim controls space trimming around field content: leading spaces
	// are skipped while scanning, trailing spaces are trimmed from string
	// values during materialization and consumed in-automaton after
	// integer values.
	// Default: true
	Trim bool

	// MaxBatchRows is the maximum number of rows scanned and materialized
	// per batch. It is an internal batching granularity; it also bounds
	// how many rows the one-shot type inference samples.
	// Default: 100
	MaxBatchRows int
}

// DefaultReaderOptions returns the default reader configuration.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		Delimiter:    '\t',
		BufferSize:   stream.DefaultBufferSize,
		Trim:         true,
		MaxBatchRows: 100,
	}
}

// Validate checks if the options are valid.
// Returns an error if the options are invalid.
func (o ReaderOptions) Validate() error {
	if !scan.ValidDelimiter(o.Delimiter) {
		return &OptionsError{Field: "Delimiter", Message: "must be tab, semicolon, or pipe"}
	}
	if o.BufferSize <= 0 {
		return &OptionsError{Field: "BufferSize", Message: "must be positive"}
	}
	if o.BufferSize > stream.MaxWindow {
		return &OptionsError{Field: "BufferSize", Message: "exceeds maximum window size"}
	}
	if o.MaxBatchRows <= 0 {
		return &OptionsError{Field: "MaxBatchRows", Message: "must be positive"}
	}
	return nil
}
