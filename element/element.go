// Package element defines the EBML element framing contract (spec.md §4.4):
// the uniform id/body_size/stored_size/read/write/skip surface every
// concrete element (primitive, void, master) implements, plus the shared
// Offset bookkeeping behavior described in SPEC_FULL.md §4.
package element

import (
	"io"

	"github.com/gbiggs/tawara/errs"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
	"github.com/gbiggs/tawara/vint"
)

// Element is the framing contract every concrete EBML element satisfies.
//
// Post-condition on Write: the stream position equals the element's
// offset plus StoredSize(). Post-condition on Read: the stream position
// equals the offset plus StoredSize(), i.e. the first byte of the next
// sibling.
type Element interface {
	// ID returns the element's EBML ID.
	ID() ids.ID
	// BodySize returns the number of bytes the element's body will occupy.
	BodySize() uint64
	// StoredSize is id_len + size_len(BodySize()) + BodySize().
	StoredSize() uint64
	// Write writes id, size, and body to w, returning bytes written.
	Write(w stream.RWS) (int64, error)
	// Read reads the element's body, assuming the caller already consumed
	// the ID. It returns the number of bytes read (size field + body).
	Read(r stream.RWS) (int64, error)
	// Offset is the stream position at which the element's ID began, as
	// recorded by the most recent Read or Write. ok is false if the
	// element has never been read or written.
	Offset() (offset int64, ok bool)
}

// Base embeds into concrete element types to provide the Offset
// bookkeeping every element needs, mirroring the original's pimpl-held
// mutable end-offset record (spec.md §9) without a separate pointer
// indirection: Go structs hold their own mutable state directly.
type Base struct {
	id        ids.ID
	offset    int64
	hasOffset bool
}

// NewBase creates a Base for the given ID.
func NewBase(id ids.ID) Base {
	return Base{id: id}
}

// ID returns the element's ID.
func (b Base) ID() ids.ID {
	return b.id
}

// Offset returns the last recorded stream position, if any.
func (b Base) Offset() (int64, bool) {
	return b.offset, b.hasOffset
}

// SetOffset records the stream position at which this element's ID began.
// Concrete element types call this at the start of Read and Write.
func (b *Base) SetOffset(pos int64) {
	b.offset = pos
	b.hasOffset = true
}

// WriteHeader writes id and the body-size VarInt (at the given width, or
// minimal width if sizeWidth is 0) to w, after recording the current
// stream position as this element's offset. It returns the number of
// bytes written.
func WriteHeader(w stream.RWS, b *Base, bodySize uint64, sizeWidth int) (int64, error) {
	pos, err := stream.Tell(w)
	if err != nil {
		return 0, err
	}
	b.SetOffset(pos)

	idN, err := ids.Write(w, b.id)
	if err != nil {
		return 0, err
	}

	sizeN, err := vint.Write(w, bodySize, sizeWidth)
	if err != nil {
		return int64(idN), err
	}

	return int64(idN + sizeN), nil
}

// ReadHeader records the current stream position as this element's
// offset (the caller has already consumed the ID immediately before this
// call, so the recorded offset is backdated by the ID's width) and reads
// the body-size VarInt, returning the declared body size and the number
// of header bytes consumed after the ID (i.e. just the size field).
func ReadHeader(r stream.RWS, b *Base, idWidth int) (uint64, int64, error) {
	pos, err := stream.Tell(r)
	if err != nil {
		return 0, 0, err
	}
	b.SetOffset(pos - int64(idWidth))

	size, sizeN, err := vint.Read(r)
	if err != nil {
		return 0, 0, err
	}

	return size, int64(sizeN), nil
}

// Skip advances past a complete element without parsing its body. If
// consumeID is false, the caller has already read the ID and only the
// size field plus body remain; otherwise the ID is read first.
func Skip(r stream.RWS, consumeID bool) (int64, error) {
	var n int64

	if consumeID {
		_, idN, err := ids.Read(r)
		if err != nil {
			return 0, err
		}
		n += int64(idN)
	}

	size, sizeN, err := vint.Read(r)
	if err != nil {
		return n, err
	}
	n += int64(sizeN)

	if err := stream.Skip(r, int64(size)); err != nil {
		return n, err
	}
	n += int64(size)

	return n, nil
}

// ReadBody reads exactly size bytes from r into a new slice. It is the
// shared primitive-element body reader (read_body(stream, size) in
// spec.md §4.4), used once the framing size has already been parsed.
func ReadBody(r io.Reader, size uint64) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errs.ErrReadError
	}

	return buf, nil
}
