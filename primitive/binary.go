package primitive

import (
	"bytes"

	"github.com/gbiggs/tawara/element"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
)

// BinaryElement is a raw-byte primitive element. The body is stored and
// returned exactly as given; no transformation is ever applied.
//
// []byte is not comparable, so BinaryElement cannot embed DefaultValue[T]
// (T is constrained to comparable) the way the other primitive types do; it
// keeps its value and default as plain fields and compares them with
// bytes.Equal in IsDefault instead.
type BinaryElement struct {
	element.Base
	value        []byte
	defaultValue []byte
	hasDefault   bool
}

var _ element.Element = (*BinaryElement)(nil)

// NewBinary creates a BinaryElement with the given ID and initial value.
func NewBinary(id ids.ID, value []byte) *BinaryElement {
	return &BinaryElement{Base: element.NewBase(id), value: value}
}

// Value returns the current value.
func (e *BinaryElement) Value() []byte {
	return e.value
}

// SetValue sets the current value.
func (e *BinaryElement) SetValue(v []byte) {
	e.value = v
}

// HasDefault reports whether a default has been set.
func (e *BinaryElement) HasDefault() bool {
	return e.hasDefault
}

// Default returns the default value and whether one is set.
func (e *BinaryElement) Default() ([]byte, bool) {
	return e.defaultValue, e.hasDefault
}

// SetDefault sets the default value.
func (e *BinaryElement) SetDefault(v []byte) {
	e.defaultValue = v
	e.hasDefault = true
}

// RemoveDefault clears the default, if any.
func (e *BinaryElement) RemoveDefault() {
	e.defaultValue = nil
	e.hasDefault = false
}

// IsDefault reports whether the current value equals the default, byte for
// byte. It is false if no default has been set.
func (e *BinaryElement) IsDefault() bool {
	if !e.hasDefault {
		return false
	}

	return bytes.Equal(e.value, e.defaultValue)
}

func (e *BinaryElement) BodySize() uint64 {
	return uint64(len(e.value))
}

func (e *BinaryElement) StoredSize() uint64 {
	idLen, _ := ids.Size(e.ID())
	body := e.BodySize()

	return uint64(idLen) + uint64(sizeLen(body)) + body
}

func (e *BinaryElement) Write(w stream.RWS) (int64, error) {
	body := e.value

	n, err := element.WriteHeader(w, &e.Base, uint64(len(body)), 0)
	if err != nil {
		return n, err
	}

	bn, err := writeAll(w, body)

	return n + int64(bn), err
}

func (e *BinaryElement) Read(r stream.RWS) (int64, error) {
	size, sizeN, err := element.ReadHeader(r, &e.Base, mustIDLen(e.ID()))
	if err != nil {
		return 0, err
	}

	body, err := element.ReadBody(r, size)
	if err != nil {
		return sizeN, err
	}

	e.value = body

	return sizeN + int64(size), nil
}
