package primitive

import (
	"github.com/gbiggs/tawara/element"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
)

// StringElement is a UTF-8 string primitive element with optional
// trailing NUL padding (spec.md §4.5). Padding is a per-instance setting
// the caller controls via SetPadding; it is never added automatically.
type StringElement struct {
	element.Base
	DefaultValue[string]
	padding int
}

var _ element.Element = (*StringElement)(nil)

// NewString creates a StringElement with the given ID and initial value.
func NewString(id ids.ID, value string) *StringElement {
	e := &StringElement{Base: element.NewBase(id)}
	e.SetValue(value)

	return e
}

// Padding returns the number of trailing zero bytes appended to the body.
func (e *StringElement) Padding() int {
	return e.padding
}

// SetPadding sets the number of trailing zero bytes appended to the body.
func (e *StringElement) SetPadding(n int) {
	e.padding = n
}

func (e *StringElement) BodySize() uint64 {
	return uint64(len(e.Value()) + e.padding)
}

func (e *StringElement) StoredSize() uint64 {
	idLen, _ := ids.Size(e.ID())
	body := e.BodySize()

	return uint64(idLen) + uint64(sizeLen(body)) + body
}

func (e *StringElement) Write(w stream.RWS) (int64, error) {
	body := e.BodySize()

	n, err := element.WriteHeader(w, &e.Base, body, 0)
	if err != nil {
		return n, err
	}

	bn, err := writeAll(w, []byte(e.Value()))
	if err != nil {
		return n + int64(bn), err
	}

	if e.padding > 0 {
		if err := stream.Zero(w, int64(e.padding)); err != nil {
			return n + int64(bn), err
		}
		bn += e.padding
	}

	return n + int64(bn), nil
}

func (e *StringElement) Read(r stream.RWS) (int64, error) {
	size, sizeN, err := element.ReadHeader(r, &e.Base, mustIDLen(e.ID()))
	if err != nil {
		return 0, err
	}

	body, err := element.ReadBody(r, size)
	if err != nil {
		return sizeN, err
	}

	trimmed := len(body)
	for trimmed > 0 && body[trimmed-1] == 0 {
		trimmed--
	}

	e.SetValue(string(body[:trimmed]))
	e.padding = len(body) - trimmed

	return sizeN + int64(size), nil
}
