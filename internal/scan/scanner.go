package scan

import (
	"errors"
	"fmt"
)

// class represents byte classes for the scanner state machine.
type class uint8

const (
	classOther   class = iota // control bytes, non-ASCII, anything unlisted
	classDigit                // '0'..'9'
	classSign                 // '+', '-'
	classSpace                // ' '
	classVisible              // '!'..'~' except delimiter, digits, signs
	classDelim                // the configured delimiter
	classNewline              // '\n'
)

// state represents states of the scanner automaton.
type state uint8

const (
	stateBegin        state = iota // before the first byte of a field
	stateSign                      // consumed a leading '+' or '-'
	stateInteger                   // inside a digit run
	stateIntegerSpace              // trailing spaces after a digit run (trim only)
	stateString                    // inside a text field
)

// ErrDelimiter is returned by NewScanner for a delimiter outside the
// supported set (tab, semicolon, pipe).
var ErrDelimiter = errors.New("delimiter must be tab, semicolon, or pipe")

var errUnterminated = errors.New("window ends inside a line")

// Error reports a byte the automaton cannot accept. Offset is the 0-based
// position within the scanned window; the caller translates it into a line
// number for diagnostics.
type Error struct {
	Offset int
	Byte   byte
}

// Error returns a formatted message naming the offending byte.
func (e *Error) Error() string {
	return fmt.Sprintf("unexpected byte 0x%02x", e.Byte)
}

// ValidDelimiter reports whether b is one of the supported delimiters.
func ValidDelimiter(b byte) bool {
	return b == '\t' || b == ';' || b == '|'
}

// Scanner is a deterministic finite automaton that consumes one line of a
// buffer window per call and emits one Token per field.
//
// Byte classification goes through a 256-entry lookup table built once per
// Scanner for the configured delimiter; the table fits in L1 cache and keeps
// the dispatch loop free of per-byte comparisons against the delimiter.
type Scanner struct {
	classes [256]class
	trim    bool
}

// NewScanner builds a Scanner for the given delimiter. trim enables
// leading-space skipping and in-automaton trailing-space handling for
// integer fields. Returns ErrDelimiter for an unsupported delimiter.
func NewScanner(delim byte, trim bool) (*Scanner, error) {
	if !ValidDelimiter(delim) {
		return nil, ErrDelimiter
	}

	s := &Scanner{trim: trim}
	for b := '!'; b <= '~'; b++ {
		s.classes[b] = classVisible
	}
	for b := '0'; b <= '9'; b++ {
		s.classes[b] = classDigit
	}
	s.classes['+'] = classSign
	s.classes['-'] = classSign
	s.classes[' '] = classSpace
	s.classes['\n'] = classNewline
	s.classes[delim] = classDelim
	return s, nil
}

// ScanLine scans one newline-terminated line of buf starting at pos and
// records one Token per field into row. It returns the position just past the
// consumed newline and the number of fields the line contained.
//
// The caller guarantees that buf ends at or before a newline, so the
// automaton never looks past a single line. Fields beyond len(row) are
// counted but not recorded; the caller detects the count mismatch.
//
// Field kinds follow the transition rules of the automaton:
//   - a digit run, optionally signed, is an INTEGER;
//   - a bare sign, or any field containing bytes outside a clean digit run,
//     is a STRING;
//   - with trim enabled, spaces after a digit run are consumed without
//     extending the integer token; a visible byte after them turns the whole
//     field back into a STRING spanning from its first byte.
//
// Trailing-space trimming for STRING fields is deliberately not done here;
// the column materializer shrinks string spans from the right instead.
func (s *Scanner) ScanLine(buf []byte, pos int, row []Token) (next, nfields int, err error) {
	st := stateBegin
	col := 0
	open := pos // 0-based position of the current field's first byte

	// emit records a token for the current field ending just before end.
	emit := func(kind Kind, end int) {
		if col < len(row) {
			row[col] = MakeToken(kind, open+1, end)
		}
	}

	for pos < len(buf) {
		b := buf[pos]
		c := s.classes[b]

		switch st {
		case stateBegin:
			switch c {
			case classDigit:
				open = pos
				st = stateInteger
			case classSign:
				open = pos
				st = stateSign
			case classSpace:
				if !s.trim {
					open = pos
					st = stateString
				}
			case classVisible:
				open = pos
				st = stateString
			case classDelim:
				open = pos
				emit(KindString, pos) // empty field
				col++
			case classNewline:
				if col > 0 {
					open = pos
					emit(KindString, pos) // empty trailing field
					col++
				}
				return pos + 1, col, nil
			default:
				return 0, 0, &Error{Offset: pos, Byte: b}
			}

		case stateSign:
			switch c {
			case classDigit:
				st = stateInteger
			case classSpace, classVisible:
				st = stateString
			case classDelim:
				emit(KindString, pos) // a bare sign is not a valid integer
				col++
				st = stateBegin
			case classNewline:
				emit(KindString, pos)
				col++
				return pos + 1, col, nil
			default:
				return 0, 0, &Error{Offset: pos, Byte: b}
			}

		case stateInteger:
			switch c {
			case classDigit:
				// extend the digit run
			case classSpace:
				if s.trim {
					// Provisional emission: superseded by a STRING token
					// spanning the whole field if a visible byte follows.
					emit(KindInteger, pos)
					st = stateIntegerSpace
				} else {
					st = stateString
				}
			case classVisible:
				st = stateString
			case classDelim:
				emit(KindInteger, pos)
				col++
				st = stateBegin
			case classNewline:
				emit(KindInteger, pos)
				col++
				return pos + 1, col, nil
			default:
				return 0, 0, &Error{Offset: pos, Byte: b}
			}

		case stateIntegerSpace:
			switch c {
			case classSpace:
				// consume without extending the integer token
			case classVisible:
				st = stateString
			case classDelim:
				col++ // integer token already recorded, no re-emit
				st = stateBegin
			case classNewline:
				col++
				return pos + 1, col, nil
			default:
				return 0, 0, &Error{Offset: pos, Byte: b}
			}

		case stateString:
			switch c {
			case classDigit, classSign, classSpace, classVisible:
				// extend the field
			case classDelim:
				emit(KindString, pos)
				col++
				st = stateBegin
			case classNewline:
				emit(KindString, pos)
				col++
				return pos + 1, col, nil
			default:
				return 0, 0, &Error{Offset: pos, Byte: b}
			}
		}

		pos++
	}

	// The caller guarantees the window ends at or before a newline, so a
	// well-behaved caller never reaches this.
	return 0, 0, errUnterminated
}
