// Package stream defines the byte-stream contract this module requires
// (spec.md §9: "the target should require the stream interface to provide
// absolute seek+write+read+tell, and never assume relative-seek survives
// across buffered boundaries") and a few small helpers built on it:
// position tracking (Tell), forward skipping (Skip), and zero-filling (Zero).
package stream

import (
	"io"

	"github.com/gbiggs/tawara/errs"
)

// RWS is the stream contract every reader/writer in this module is given.
// io.Seeker's Seek already provides absolute positioning via io.SeekStart;
// this module never relies on relative seeks surviving across buffered
// I/O boundaries, per spec.md §9.
type RWS interface {
	io.Reader
	io.Writer
	io.Seeker
}

// Tell returns the current absolute position of s without moving it.
func Tell(s io.Seeker) (int64, error) {
	pos, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, errs.ErrReadError
	}

	return pos, nil
}

// Skip advances s by n bytes without reading them, for walking past an
// opaque or uninteresting element body (element.Skip, segment collaborator
// children).
func Skip(s io.Seeker, n int64) error {
	if _, err := s.Seek(n, io.SeekCurrent); err != nil {
		return errs.ErrReadError
	}

	return nil
}

// Zero writes n zero bytes to w, in bounded-size chunks so a large Void
// body doesn't require an n-byte allocation.
func Zero(w io.Writer, n int64) error {
	const chunk = 4096

	buf := make([]byte, chunk)
	for n > 0 {
		write := int64(chunk)
		if n < write {
			write = n
		}

		if _, err := w.Write(buf[:write]); err != nil {
			return errs.ErrWriteError
		}

		n -= write
	}

	return nil
}
