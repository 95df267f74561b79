package primitive

import (
	"time"

	"github.com/gbiggs/tawara/element"
	"github.com/gbiggs/tawara/endian"
	"github.com/gbiggs/tawara/errs"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
)

// epoch is the EBML date reference instant: 2001-01-01T00:00:00 UTC.
var epoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// DateElement is an 8-byte signed-integer primitive element storing
// nanoseconds since epoch, little-endian on the wire. spec.md §9 resolves
// the nanosecond-vs-microsecond open question in favor of nanoseconds
// everywhere (the original's build flag is not carried forward).
type DateElement struct {
	element.Base
	DefaultValue[time.Time]
}

var _ element.Element = (*DateElement)(nil)

// NewDate creates a DateElement with the given ID and initial instant.
func NewDate(id ids.ID, value time.Time) *DateElement {
	e := &DateElement{Base: element.NewBase(id)}
	e.SetValue(value)

	return e
}

func (e *DateElement) BodySize() uint64 {
	return 8
}

func (e *DateElement) StoredSize() uint64 {
	idLen, _ := ids.Size(e.ID())

	return uint64(idLen) + uint64(sizeLen(8)) + 8
}

func (e *DateElement) Write(w stream.RWS) (int64, error) {
	ns := e.Value().Sub(epoch).Nanoseconds()

	engine := endian.GetLittleEndianEngine()
	body := engine.AppendUint64(nil, uint64(ns))

	n, err := element.WriteHeader(w, &e.Base, 8, 0)
	if err != nil {
		return n, err
	}

	bn, err := writeAll(w, body)

	return n + int64(bn), err
}

func (e *DateElement) Read(r stream.RWS) (int64, error) {
	size, sizeN, err := element.ReadHeader(r, &e.Base, mustIDLen(e.ID()))
	if err != nil {
		return 0, err
	}

	if size != 8 {
		return sizeN, errs.ErrBadElementLength
	}

	body, err := element.ReadBody(r, size)
	if err != nil {
		return sizeN, err
	}

	engine := endian.GetLittleEndianEngine()
	ns := int64(engine.Uint64(body))
	e.SetValue(epoch.Add(time.Duration(ns)))

	return sizeN + int64(size), nil
}
