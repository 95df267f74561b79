package primitive

import (
	"github.com/gbiggs/tawara/ebmlint"
	"github.com/gbiggs/tawara/element"
	"github.com/gbiggs/tawara/errs"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
)

// IntElement is a signed-integer primitive element, body-length 0-8 bytes.
type IntElement struct {
	element.Base
	DefaultValue[int64]
}

var _ element.Element = (*IntElement)(nil)

// NewInt creates an IntElement with the given ID and initial value.
func NewInt(id ids.ID, value int64) *IntElement {
	e := &IntElement{Base: element.NewBase(id)}
	e.SetValue(value)

	return e
}

func (e *IntElement) BodySize() uint64 {
	return uint64(ebmlint.SizeS(e.Value()))
}

func (e *IntElement) StoredSize() uint64 {
	idLen, _ := ids.Size(e.ID())
	body := e.BodySize()

	return uint64(idLen) + uint64(sizeLen(body)) + body
}

func (e *IntElement) Write(w stream.RWS) (int64, error) {
	body := e.BodySize()

	n, err := element.WriteHeader(w, &e.Base, body, 0)
	if err != nil {
		return n, err
	}

	bn, err := writeAll(w, ebmlint.EncodeS(e.Value()))

	return n + int64(bn), err
}

func (e *IntElement) Read(r stream.RWS) (int64, error) {
	size, sizeN, err := element.ReadHeader(r, &e.Base, mustIDLen(e.ID()))
	if err != nil {
		return 0, err
	}

	if size > 8 {
		return sizeN, errs.ErrBadElementLength
	}

	v, err := ebmlint.ReadS(r, int(size))
	if err != nil {
		return sizeN, err
	}
	e.SetValue(v)

	return sizeN + int64(size), nil
}
