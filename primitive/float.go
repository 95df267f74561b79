package primitive

import (
	"math"

	"github.com/gbiggs/tawara/element"
	"github.com/gbiggs/tawara/endian"
	"github.com/gbiggs/tawara/errs"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
)

// Precision selects a FloatElement's on-disk width.
type Precision uint8

const (
	Single Precision = 4
	Double Precision = 8
)

// FloatElement is an IEEE-754 float primitive element, 4 or 8 bytes,
// little-endian on the wire (spec.md §6, §9 resolves the endianness open
// question in favor of explicit little-endian).
type FloatElement struct {
	element.Base
	DefaultValue[float64]
	precision Precision
}

var _ element.Element = (*FloatElement)(nil)

// NewFloat creates a FloatElement with the given ID, value, and precision.
func NewFloat(id ids.ID, value float64, precision Precision) *FloatElement {
	e := &FloatElement{Base: element.NewBase(id), precision: precision}
	e.SetValue(value)

	return e
}

// Precision returns the element's on-disk width selector.
func (e *FloatElement) Precision() Precision {
	return e.precision
}

// SetPrecision changes the element's on-disk width.
func (e *FloatElement) SetPrecision(p Precision) {
	e.precision = p
}

func (e *FloatElement) BodySize() uint64 {
	return uint64(e.precision)
}

func (e *FloatElement) StoredSize() uint64 {
	idLen, _ := ids.Size(e.ID())
	body := e.BodySize()

	return uint64(idLen) + uint64(sizeLen(body)) + body
}

func (e *FloatElement) Write(w stream.RWS) (int64, error) {
	engine := endian.GetLittleEndianEngine()

	var body []byte
	switch e.precision {
	case Single:
		body = engine.AppendUint32(nil, math.Float32bits(float32(e.Value())))
	case Double:
		body = engine.AppendUint64(nil, math.Float64bits(e.Value()))
	default:
		return 0, errs.ErrBadElementLength
	}

	n, err := element.WriteHeader(w, &e.Base, uint64(len(body)), 0)
	if err != nil {
		return n, err
	}

	bn, err := writeAll(w, body)

	return n + int64(bn), err
}

func (e *FloatElement) Read(r stream.RWS) (int64, error) {
	size, sizeN, err := element.ReadHeader(r, &e.Base, mustIDLen(e.ID()))
	if err != nil {
		return 0, err
	}

	body, err := element.ReadBody(r, size)
	if err != nil {
		return sizeN, err
	}

	engine := endian.GetLittleEndianEngine()

	switch size {
	case 4:
		e.precision = Single
		e.SetValue(float64(math.Float32frombits(engine.Uint32(body))))
	case 8:
		e.precision = Double
		e.SetValue(math.Float64frombits(engine.Uint64(body)))
	default:
		return sizeN, errs.ErrBadElementLength
	}

	return sizeN + int64(size), nil
}
