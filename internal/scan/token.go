// Package scan implements the tokenizing finite-state scanner at the core of
// shape-dsv.
//
// The scanner operates directly on raw byte windows supplied by the stream
// layer. It processes one line at a time and emits one Token per field. A
// Token is a packed 64-bit descriptor (kind + byte span) so that a batch worth
// of tokens fits in a small, cache-friendly scratch array that the block
// coordinator reuses between batches.
package scan

import "fmt"

// Kind is the field kind recorded in a Token.
type Kind uint8

const (
	// KindString marks a field that must be materialized as text.
	KindString Kind = iota
	// KindInteger marks a field whose bytes form a valid signed decimal
	// integer (optional leading '+'/'-', then one or more digits).
	KindInteger
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Token is a packed field descriptor:
//
//	bits  0..29  start offset (1-based, inclusive)
//	bits 30..59  stop offset (1-based, inclusive)
//	bits 60..63  kind tag
//
// Offsets are 1-based positions into the buffer window the token was scanned
// from. A stop equal to start-1 encodes an empty span; callers must preserve
// it, not collapse it. Tokens are pure scratch values: they are overwritten
// every batch and must never outlive the window they point into.
type Token uint64

// MaxOffset is the largest byte offset a Token can represent. A buffer window
// larger than this is a configuration error; the stream layer refuses to grow
// past it, so offsets produced by the scanner always fit.
const MaxOffset = 1<<30 - 1

const offsetMask = 1<<30 - 1

// MakeToken packs kind and a 1-based inclusive byte span into a Token.
// stop may be start-1 to encode an empty span. Offsets outside the
// representable range indicate a broken upstream invariant and panic rather
// than silently truncating.
func MakeToken(kind Kind, start, stop int) Token {
	if start < 1 || start > MaxOffset || stop < 0 || stop > MaxOffset {
		panic(fmt.Sprintf("scan: token span [%d,%d] exceeds %d", start, stop, MaxOffset))
	}
	return Token(uint64(start) | uint64(stop)<<30 | uint64(kind)<<60)
}

// Kind returns the field kind recorded in the token.
func (t Token) Kind() Kind {
	return Kind(t >> 60)
}

// Bounds returns the token's 1-based inclusive byte span.
// stop < start means the span is empty.
func (t Token) Bounds() (start, stop int) {
	return int(t & offsetMask), int(t >> 30 & offsetMask)
}

// Bytes slices the token's span out of the window it was scanned from.
// The result aliases the window and is only valid until the next stream fill.
func (t Token) Bytes(window []byte) []byte {
	start, stop := t.Bounds()
	return window[start-1 : stop]
}
