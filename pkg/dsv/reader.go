// Package dsv reads delimiter-separated text into a column-oriented table.
//
// The reader processes input in bounded batches: it pulls a contiguous byte
// window from the stream layer, bounds a scan pass to the window's rightmost
// newline and a per-batch row budget, drives the line scanner over that
// region, and materializes the resulting tokens into growing typed columns.
// Column types are inferred exactly once, from the rows of the first batch,
// and never revisited: a column is int64 only if every sampled field of it
// scanned as a clean integer, otherwise it is string.
//
// Known limitation: because inference samples only the first batch (at most
// MaxBatchRows rows), a column that looks integral early but carries text in
// later rows is still materialized as integers, producing meaningless values
// for the offending fields rather than an error. Callers that cannot rule
// this out should raise MaxBatchRows or treat the affected columns as text
// downstream.
package dsv

import (
	"bytes"
	"errors"
	"io"

	"github.com/shapestone/shape-dsv/internal/scan"
	"github.com/shapestone/shape-dsv/internal/stream"
)

// Read reads DSV text from r into a Table using default options
// (tab-delimited, trimming enabled).
func Read(r io.Reader) (*Table, error) {
	return ReadWithOptions(r, DefaultReaderOptions())
}

// ReadWithOptions reads DSV text from r into a Table with custom options.
//
// The first line is the header; it is split on the delimiter into column
// names. A header consisting entirely of spaces (or an empty input) yields a
// table with zero columns and zero rows, regardless of any following lines.
//
// Example:
//
//	opts := dsv.DefaultReaderOptions()
//	opts.Delimiter = ';'
//	table, err := dsv.ReadWithOptions(file, opts)
func ReadWithOptions(r io.Reader, opts ReaderOptions) (*Table, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	sc, err := scan.NewScanner(opts.Delimiter, opts.Trim)
	if err != nil {
		return nil, &OptionsError{Field: "Delimiter", Message: err.Error()}
	}

	rd := &reader{
		opts: opts,
		sc:   sc,
		src:  stream.NewSource(r, opts.BufferSize),
	}
	return rd.read()
}

// reader drives one complete read, start to finish. It exclusively owns the
// stream, the token matrix, and the growing columns; there is no concurrent
// access and no state survives the call.
type reader struct {
	opts ReaderOptions
	sc   *scan.Scanner
	src  *stream.Source

	names []string
	cols  []column
	rows  int

	// matrix is the reusable token scratch, row-major, sized
	// NumCols × MaxBatchRows. Its contents are only valid for the batch
	// currently being materialized; entries beyond the batch's actual row
	// count are stale and must not be read.
	matrix []scan.Token

	// line counts fully consumed lines, header included, for diagnostics.
	line int
}

func (r *reader) read() (*Table, error) {
	header, err := r.readHeaderLine()
	if err != nil {
		return nil, err
	}

	// An all-blank header means zero columns and short-circuits the whole
	// read without entering the block loop.
	if len(bytes.Trim(header, " ")) == 0 {
		return &Table{}, nil
	}

	r.names = splitHeader(header, r.opts.Delimiter, r.opts.Trim)
	ncols := len(r.names)
	r.cols = make([]column, ncols)
	r.matrix = make([]scan.Token, ncols*r.opts.MaxBatchRows)

	inferred := false
	for {
		window := r.src.Window()

		// Bound this pass to the rightmost newline in the window.
		limit := bytes.LastIndexByte(window, '\n') + 1
		consumed := limit
		if limit == 0 {
			if !r.src.EOF() {
				// No complete line buffered yet; fill brings more
				// data, growing the window when it is full.
				if err := r.fill(); err != nil {
					return nil, err
				}
				continue
			}
			if len(window) == 0 {
				break
			}
			// End of input terminates the final line even without a
			// trailing newline. Scan a scratch copy with one added.
			consumed = len(window)
			tail := make([]byte, len(window)+1)
			copy(tail, window)
			tail[len(window)] = '\n'
			window = tail
			limit = len(window)
		}

		rows, pos, err := r.scanBatch(window, limit)
		if err != nil {
			return nil, err
		}
		if pos < consumed {
			// Row budget hit before the newline bound; the rest of
			// the window stays buffered for the next batch.
			consumed = pos
		}

		if rows > 0 && !inferred {
			r.infer(rows)
			inferred = true
		}
		r.materialize(window, rows)
		r.rows += rows

		r.src.Advance(consumed)
	}

	return &Table{names: r.names, cols: r.cols, rows: r.rows}, nil
}

// fill asks the stream for more data, mapping window exhaustion to a format
// error and passing every other stream error through unchanged.
func (r *reader) fill() error {
	err := r.src.Fill()
	if errors.Is(err, stream.ErrWindowLimit) {
		return &FormatError{Line: r.line + 1, Err: ErrLineTooLong}
	}
	return err
}

// scanBatch repeatedly invokes the scanner from the start of window until the
// line-complete limit is reached or the row budget is hit. It fills the token
// matrix one row per line and returns the row count and the position just
// past the last consumed line.
func (r *reader) scanBatch(window []byte, limit int) (rows, pos int, err error) {
	ncols := len(r.names)
	for pos < limit && rows < r.opts.MaxBatchRows {
		row := r.matrix[rows*ncols : (rows+1)*ncols]
		next, nfields, err := r.sc.ScanLine(window, pos, row)
		if err != nil {
			var se *scan.Error
			if errors.As(err, &se) {
				return 0, 0, &FormatError{Line: r.line + 1, Byte: se.Byte, Err: ErrBadByte}
			}
			return 0, 0, err
		}
		if nfields != ncols {
			return 0, 0, &FormatError{Line: r.line + 1, Err: ErrFieldCount}
		}
		pos = next
		rows++
		r.line++
	}
	return rows, pos, nil
}

// infer fixes each column's permanent element type from the first batch:
// the intersection of the per-row is-integer flags over the sampled rows.
// This decision is never revisited for subsequent batches.
func (r *reader) infer(rows int) {
	ncols := len(r.names)
	for c := range r.cols {
		isInt := true
		for row := 0; row < rows; row++ {
			isInt = isInt && r.matrix[row*ncols+c].Kind() == scan.KindInteger
		}
		if isInt {
			r.cols[c].kind = KindInt
		} else {
			r.cols[c].kind = KindString
		}
	}
}

// materialize appends the batch's token values to the growing columns.
// String values are copied out of the window before it is refilled; integer
// values are parsed in place.
func (r *reader) materialize(window []byte, rows int) {
	ncols := len(r.names)
	for c := range r.cols {
		col := &r.cols[c]
		switch col.kind {
		case KindInt:
			for row := 0; row < rows; row++ {
				tok := r.matrix[row*ncols+c]
				col.ints = append(col.ints, parseInt(tok.Bytes(window)))
			}
		case KindString:
			for row := 0; row < rows; row++ {
				tok := r.matrix[row*ncols+c]
				start, stop := tok.Bounds()
				if r.opts.Trim {
					for stop >= start && window[stop-1] == ' ' {
						stop--
					}
				}
				col.strs = append(col.strs, string(window[start-1:stop]))
			}
		}
	}
}

// parseInt parses an optional leading sign followed by decimal digits.
// The scanner already guaranteed the shape for integer-kinded tokens, so no
// further validation (and no overflow check) is performed here. Fields that
// slip through after first-batch inference are parsed under the same rule.
func parseInt(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}
	neg := false
	i := 0
	switch b[0] {
	case '-':
		neg = true
		i = 1
	case '+':
		i = 1
	}
	var v int64
	for ; i < len(b); i++ {
		v = v*10 + int64(b[i]-'0')
	}
	if neg {
		return -v
	}
	return v
}

// readHeaderLine buffers until the first newline and returns the header
// bytes without it. At end of input the remaining bytes are the header.
// The returned slice is consumed from the stream before returning.
func (r *reader) readHeaderLine() ([]byte, error) {
	for {
		if err := r.fill(); err != nil {
			return nil, err
		}
		window := r.src.Window()
		idx := bytes.IndexByte(window, '\n')
		if idx < 0 {
			if !r.src.EOF() {
				continue
			}
			idx = len(window)
		}
		header := make([]byte, idx)
		copy(header, window[:idx])
		if idx < len(window) {
			r.src.Advance(idx + 1)
		} else {
			r.src.Advance(idx)
		}
		r.line = 1
		return header, nil
	}
}

// splitHeader splits the header line on the delimiter into column name
// symbols, trimming surrounding spaces from each name when trim is enabled.
func splitHeader(header []byte, delim byte, trim bool) []string {
	parts := bytes.Split(header, []byte{delim})
	names := make([]string, len(parts))
	for i, p := range parts {
		if trim {
			p = bytes.Trim(p, " ")
		}
		names[i] = string(p)
	}
	return names
}
