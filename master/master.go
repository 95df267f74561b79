// Package master implements the Master element framework (spec.md §4.7):
// uniform write/read/total_size for any element whose body is a sequence
// of child elements, and optional CRC-32 body protection. The back-patching
// protocol for an element whose body size isn't known until its children
// have been streamed is implemented by package segment, not here.
package master

import (
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/gbiggs/tawara/element"
	"github.com/gbiggs/tawara/errs"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/pool"
	"github.com/gbiggs/tawara/internal/stream"
	"github.com/gbiggs/tawara/vint"
)

// crcSize is id_len(CRC32) + size_len(4) + 4: the CRC32 child's own
// stored size, always 1+1+4 since CRC32's ID and 4-byte body never need a
// wider encoding.
const crcSize = 6

// Dispatcher builds a child element for a given ID during Read, or
// reports errs.ErrInvalidChildID if the ID doesn't belong to this master.
// Concrete masters (header, seek) supply one of these; it is the
// Go replacement for the CRTP-virtual child-dispatch switch the original
// puts in every concrete master's read loop.
type Dispatcher func(id ids.ID) (element.Element, error)

// Base provides the shared write/read/total_size machinery every master
// element (EBML Header, Seek, Metaseek) builds on. It does not
// implement element.Element itself — concrete masters embed Base and add
// the handful of accessors (id, allowed-child validation) specific to their
// child set.
type Base struct {
	element.Base
	children []element.Element
	useCRC   bool
}

// NewBase creates a Base for the given ID. useCRC is the type's default
// (spec.md §4.7: Seek defaults off, Metaseek defaults on).
func NewBase(id ids.ID, useCRC bool) Base {
	return Base{Base: element.NewBase(id), useCRC: useCRC}
}

// EnableCRC turns CRC-32 body protection on or off.
func (b *Base) EnableCRC(on bool) {
	b.useCRC = on
}

// UseCRC reports whether CRC-32 body protection is on.
func (b *Base) UseCRC() bool {
	return b.useCRC
}

// Children returns the master's current children, in order.
func (b *Base) Children() []element.Element {
	return b.children
}

// Append adds a child to the end of the master's child list.
func (b *Base) Append(e element.Element) {
	b.children = append(b.children, e)
}

// Clear removes all children.
func (b *Base) Clear() {
	b.children = nil
}

func (b *Base) childrenSize() uint64 {
	var n uint64
	for _, c := range b.children {
		n += c.StoredSize()
	}

	return n
}

// BodySize is crc_size + Σ child.stored_size when CRC is on, else just
// Σ child.stored_size (spec.md §4.7).
func (b *Base) BodySize() uint64 {
	size := b.childrenSize()
	if b.useCRC {
		size += crcSize
	}

	return size
}

// StoredSize is id_len + size_len(BodySize) + BodySize.
func (b *Base) StoredSize() uint64 {
	idLen, _ := ids.Size(b.ID())
	body := b.BodySize()

	return uint64(idLen) + uint64(vint.Size(body)) + body
}

// Write writes id, size, and (if CRC is on) a CRC32 child followed by the
// serialised children, to w. Children are buffered in a pooled buffer so
// the CRC can be computed before anything is written — spec.md §4.7's
// option (a), chosen over streaming-with-a-tee (option (b)) because every
// master this library defines has a bounded child set, never large enough
// to need avoiding an in-memory buffer.
func (b *Base) Write(w stream.RWS) (int64, error) {
	// Children record their offset through the stream they are written to,
	// so they are serialised into a seekable MemStream and the result is
	// collected in the pooled buffer.
	body := stream.NewMemStream(nil)
	for _, c := range b.children {
		if _, err := c.Write(body); err != nil {
			return 0, err
		}
	}

	buf := pool.Get()
	defer pool.Put(buf)
	_, _ = buf.Write(body.Bytes())

	bodySize := uint64(buf.Len())
	if b.useCRC {
		bodySize += crcSize
	}

	n, err := element.WriteHeader(w, &b.Base, bodySize, 0)
	if err != nil {
		return n, err
	}

	if b.useCRC {
		sum := crc32.ChecksumIEEE(buf.Bytes())

		crcIDLen, err := ids.Write(w, ids.CRC32)
		if err != nil {
			return n + int64(crcIDLen), err
		}

		sizeN, err := vint.Write(w, 4, 0)
		if err != nil {
			return n + int64(crcIDLen+sizeN), err
		}

		var sumBytes [4]byte
		binary.LittleEndian.PutUint32(sumBytes[:], sum)

		bn, err := w.Write(sumBytes[:])
		if err != nil {
			return n + int64(crcIDLen+sizeN+bn), errs.ErrWriteError
		}

		n += int64(crcIDLen + sizeN + bn)
	}

	bn, err := buf.WriteTo(w)
	if err != nil {
		return n + bn, errs.ErrWriteError
	}

	return n + bn, nil
}

// Read reads the master's size field, splits off a leading CRC32 child if
// present and verifies it, then parses the remainder of the body as a
// sequence of children dispatched through dispatch. required lists child
// IDs that must each appear at least once.
func (b *Base) Read(r stream.RWS, idWidth int, dispatch Dispatcher, required []ids.ID) (int64, error) {
	size, sizeN, err := element.ReadHeader(r, &b.Base, idWidth)
	if err != nil {
		return 0, err
	}

	b.children = nil
	b.useCRC = false

	if size == 0 {
		if err := checkRequired(required, nil, b.ID()); err != nil {
			return sizeN, err
		}

		return sizeN, nil
	}

	firstID, firstIDN, err := ids.Read(r)
	if err != nil {
		return sizeN, err
	}

	var bodyBytes []byte

	if firstID == ids.CRC32 {
		crcBodySize, crcSizeN, err := vint.Read(r)
		if err != nil {
			return sizeN, err
		}
		if crcBodySize != 4 {
			return sizeN, errs.ErrBadElementLength
		}

		var crcBody [4]byte
		if _, err := io.ReadFull(r, crcBody[:]); err != nil {
			return sizeN, errs.ErrReadError
		}
		storedCRC := binary.LittleEndian.Uint32(crcBody[:])

		consumed := uint64(firstIDN) + uint64(crcSizeN) + 4
		if consumed > size {
			return sizeN, &errs.ElementError{Err: errs.ErrBadBodySize, ID: uint32(b.ID())}
		}

		bodyBytes = make([]byte, size-consumed)
		if _, err := io.ReadFull(r, bodyBytes); err != nil {
			return sizeN, errs.ErrReadError
		}

		if crc32.ChecksumIEEE(bodyBytes) != storedCRC {
			return sizeN, errs.ErrBadCRC
		}

		b.useCRC = true
	} else {
		idBuf, _ := ids.Encode(firstID)

		rest := make([]byte, size-uint64(firstIDN))
		if _, err := io.ReadFull(r, rest); err != nil {
			return sizeN, errs.ErrReadError
		}

		bodyBytes = append(idBuf, rest...)
	}

	ms := stream.NewMemStream(bodyBytes)
	seen := make(map[ids.ID]bool)

	for {
		pos, err := stream.Tell(ms)
		if err != nil {
			return sizeN, err
		}
		if pos >= int64(len(bodyBytes)) {
			break
		}

		childID, _, err := ids.Read(ms)
		if err != nil {
			return sizeN, err
		}

		child, err := dispatch(childID)
		if err != nil {
			return sizeN, &errs.ElementError{Err: errs.ErrInvalidChildID, ID: uint32(childID), Parent: uint32(b.ID())}
		}

		if _, err := child.Read(ms); err != nil {
			return sizeN, err
		}

		b.children = append(b.children, child)
		seen[childID] = true
	}

	if err := checkRequired(required, seen, b.ID()); err != nil {
		return sizeN, err
	}

	return sizeN + int64(size), nil
}

func checkRequired(required []ids.ID, seen map[ids.ID]bool, parent ids.ID) error {
	for _, req := range required {
		if !seen[req] {
			return &errs.ElementError{Err: errs.ErrMissingChild, ID: uint32(req), Parent: uint32(parent)}
		}
	}

	return nil
}
