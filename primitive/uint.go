package primitive

import (
	"github.com/gbiggs/tawara/ebmlint"
	"github.com/gbiggs/tawara/element"
	"github.com/gbiggs/tawara/errs"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
)

// UIntElement is an unsigned-integer primitive element, body-length 0-8
// bytes (spec.md §4.5). A zero value always encodes to an empty body.
type UIntElement struct {
	element.Base
	DefaultValue[uint64]
}

var _ element.Element = (*UIntElement)(nil)

// NewUInt creates a UIntElement with the given ID and initial value.
func NewUInt(id ids.ID, value uint64) *UIntElement {
	e := &UIntElement{Base: element.NewBase(id)}
	e.SetValue(value)

	return e
}

// BodySize is ebmlint.SizeU(value).
func (e *UIntElement) BodySize() uint64 {
	return uint64(ebmlint.SizeU(e.Value()))
}

// StoredSize is id_len + size_len(BodySize) + BodySize.
func (e *UIntElement) StoredSize() uint64 {
	idLen, _ := ids.Size(e.ID())
	body := e.BodySize()

	return uint64(idLen) + uint64(sizeLen(body)) + body
}

// Write writes the element to w.
func (e *UIntElement) Write(w stream.RWS) (int64, error) {
	body := e.BodySize()

	n, err := element.WriteHeader(w, &e.Base, body, 0)
	if err != nil {
		return n, err
	}

	bn, err := writeAll(w, ebmlint.EncodeU(e.Value()))

	return n + int64(bn), err
}

// Read reads the element's size field and body from r, assuming the ID
// has already been consumed.
func (e *UIntElement) Read(r stream.RWS) (int64, error) {
	size, sizeN, err := element.ReadHeader(r, &e.Base, mustIDLen(e.ID()))
	if err != nil {
		return 0, err
	}

	if size > 8 {
		return sizeN, errs.ErrBadElementLength
	}

	v, err := ebmlint.ReadU(r, int(size))
	if err != nil {
		return sizeN, err
	}
	e.SetValue(v)

	return sizeN + int64(size), nil
}
