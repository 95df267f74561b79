package stream

import (
	"io"
)

// MemStream is an in-memory RWS backed by a growable byte slice. It is
// useful for tests and for callers who want to build a document entirely in
// memory before flushing it to a real file.
type MemStream struct {
	buf []byte
	pos int64
}

var _ RWS = (*MemStream)(nil)

// NewMemStream returns an empty MemStream, or one seeded with initial if
// given.
func NewMemStream(initial []byte) *MemStream {
	buf := make([]byte, len(initial))
	copy(buf, initial)

	return &MemStream{buf: buf}
}

// Bytes returns the stream's current contents.
func (m *MemStream) Bytes() []byte {
	return m.buf
}

func (m *MemStream) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}

	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)

	return n, nil
}

func (m *MemStream) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}

	n := copy(m.buf[m.pos:end], p)
	m.pos = end

	return n, nil
}

func (m *MemStream) Seek(offset int64, whence int) (int64, error) {
	var target int64

	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = m.pos + offset
	case io.SeekEnd:
		target = int64(len(m.buf)) + offset
	default:
		return 0, io.ErrUnexpectedEOF
	}

	if target < 0 {
		return 0, io.ErrUnexpectedEOF
	}

	m.pos = target

	return m.pos, nil
}
