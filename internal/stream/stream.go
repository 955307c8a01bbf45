// Package stream provides the buffered byte-window source the block
// coordinator reads from.
//
// A Source owns a single reusable buffer. The coordinator asks for the
// current window, scans some prefix of it, and tells the Source how many
// bytes were consumed. Fill compacts the unconsumed tail to the front of the
// buffer and reads more data behind it, so the scanner always operates on a
// contiguous byte window without per-line allocation.
package stream

import (
	"errors"
	"io"
)

// DefaultBufferSize is the initial window size: 8 MiB keeps whole batches of
// typical lines resident while staying far below the window offset limit.
const DefaultBufferSize = 8 << 20

// MaxWindow is the largest window the Source will grow to. It matches the
// offset range the scanner's packed tokens can represent; growing past it
// would silently truncate token offsets, so it is an error instead.
const MaxWindow = 1<<30 - 1

// ErrWindowLimit is returned by Fill when a single line is longer than
// MaxWindow and the buffer cannot grow any further.
var ErrWindowLimit = errors.New("buffer window exceeds maximum size")

// Source supplies contiguous byte windows from an io.Reader.
//
// The buffer size bounds a single read, not line length: when the window is
// full and nothing has been consumed, Fill grows the buffer geometrically up
// to MaxWindow so that a line longer than the configured size still fits.
type Source struct {
	r     io.Reader
	buf   []byte
	start int // first unconsumed byte
	end   int // one past the last buffered byte
	eof   bool
}

// NewSource returns a Source reading from r with the given initial buffer
// size. A non-positive size falls back to DefaultBufferSize; sizes beyond
// MaxWindow are clamped.
func NewSource(r io.Reader, size int) *Source {
	if size <= 0 {
		size = DefaultBufferSize
	}
	if size > MaxWindow {
		size = MaxWindow
	}
	return &Source{r: r, buf: make([]byte, size)}
}

// Window returns the currently buffered, unconsumed bytes. The slice aliases
// the internal buffer and is invalidated by the next call to Fill.
func (s *Source) Window() []byte {
	return s.buf[s.start:s.end]
}

// EOF reports whether the underlying reader has been exhausted. The window
// may still hold unconsumed bytes after EOF returns true.
func (s *Source) EOF() bool {
	return s.eof
}

// Advance discards n bytes from the front of the window.
func (s *Source) Advance(n int) {
	s.start += n
	if s.start > s.end {
		s.start = s.end
	}
	if s.start == s.end {
		s.start, s.end = 0, 0
	}
}

// Fill blocks until at least one more byte is buffered or the reader reports
// end of input. Unconsumed bytes are compacted to the front of the buffer
// first; if the buffer is already full of unconsumed data it is grown, up to
// MaxWindow. I/O errors propagate unchanged.
func (s *Source) Fill() error {
	if s.eof {
		return nil
	}

	if s.start > 0 {
		copy(s.buf, s.buf[s.start:s.end])
		s.end -= s.start
		s.start = 0
	}

	if s.end == len(s.buf) {
		if len(s.buf) >= MaxWindow {
			return ErrWindowLimit
		}
		size := len(s.buf) * 2
		if size > MaxWindow {
			size = MaxWindow
		}
		grown := make([]byte, size)
		copy(grown, s.buf[:s.end])
		s.buf = grown
	}

	for {
		n, err := s.r.Read(s.buf[s.end:])
		s.end += n
		if err == io.EOF {
			s.eof = true
			return nil
		}
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
	}
}
