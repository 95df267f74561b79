// Package pool provides a pooled byte buffer used wherever this module
// needs to accumulate bytes in memory before a single write: master.Base.Write
// buffers a master's serialised children here before writing them (and,
// with CRC enabled, before computing their CRC-32). Segment back-patching
// does not use it; it seeks back and rewrites the size field in place.
package pool

import (
	"io"
	"sync"
)

// Buffer size tiers. Element bodies are typically small (a handful of
// primitive children); the default tier covers the overwhelming majority
// without reallocating. The threshold discards buffers grown unusually
// large so one oversized Segment doesn't bloat the pool for everyone else.
const (
	DefaultSize  = 1024 * 16  // 16KiB
	MaxThreshold = 1024 * 128 // 128KiB
)

// Buffer is a reusable byte slice wrapper. Grow enlarges it in steps of at
// least DefaultSize (a quarter of the current capacity once that exceeds
// 4*DefaultSize) rather than byte-at-a-time appends.
type Buffer struct {
	B []byte
}

// New creates a Buffer with the given starting capacity.
func New(capacity int) *Buffer {
	return &Buffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the buffer's current contents.
func (b *Buffer) Bytes() []byte {
	return b.B
}

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int {
	return len(b.B)
}

// Reset empties the buffer while retaining its backing array.
func (b *Buffer) Reset() {
	b.B = b.B[:0]
}

// Grow ensures the buffer can accept at least n more bytes without
// reallocating.
func (b *Buffer) Grow(n int) {
	available := cap(b.B) - len(b.B)
	if available >= n {
		return
	}

	growBy := DefaultSize
	if cap(b.B) > 4*DefaultSize {
		growBy = cap(b.B) / 4
	}
	if growBy < n {
		growBy = n
	}

	newBuf := make([]byte, len(b.B), len(b.B)+growBy)
	copy(newBuf, b.B)
	b.B = newBuf
}

// Write appends data, growing the buffer as needed. It always returns
// len(data), nil, satisfying io.Writer.
func (b *Buffer) Write(data []byte) (int, error) {
	b.Grow(len(data))
	b.B = append(b.B, data...)

	return len(data), nil
}

// WriteTo writes the buffer's contents to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.B)
	return int64(n), err
}

// pool is the default pool used by Get/Put.
var pool = sync.Pool{
	New: func() any { return New(DefaultSize) },
}

// Get retrieves a Buffer from the pool, ready to use.
func Get() *Buffer {
	buf, _ := pool.Get().(*Buffer)
	return buf
}

// Put returns a Buffer to the pool for reuse, discarding it instead if it
// grew past MaxThreshold.
func Put(b *Buffer) {
	if b == nil {
		return
	}

	if cap(b.B) > MaxThreshold {
		return
	}

	b.Reset()
	pool.Put(b)
}
