// Package void implements the Void element (spec.md §4.6): a reserved-space
// padding element that can be sized to exactly fill the footprint of any
// other element, so a document can overwrite an element in place without
// shifting surrounding bytes.
package void

import (
	"github.com/gbiggs/tawara/element"
	"github.com/gbiggs/tawara/errs"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
	"github.com/gbiggs/tawara/vint"
)

// Element is a Void: ID 0xEC, body of size unused bytes.
type Element struct {
	element.Base
	size      uint64
	extraSize int
	fill      bool
}

var _ element.Element = (*Element)(nil)

// New creates a Void element with the given body size. Fill defaults to
// true: Write zeroes the body rather than seeking over existing bytes.
func New(size uint64) *Element {
	return &Element{Base: element.NewBase(ids.Void), size: size, fill: true}
}

// NewForElement creates a Void sized so its total_size equals target's,
// per spec.md §4.6: subtract the void ID byte and its own size-field width
// from target's total size to get a candidate body size, then spend one
// extra byte of the size field if that candidate doesn't land exactly
// (narrower size fields can encode a slightly larger body than a wider one
// steals from it).
func NewForElement(target element.Element) *Element {
	v := New(0)

	total := target.StoredSize()
	idLen, _ := ids.Size(ids.Void)

	size := total - uint64(idLen)
	size -= uint64(vint.Size(size))

	v.size = size
	if v.StoredSize() != total {
		v.extraSize = 1
	}

	return v
}

// SetFill controls whether Write zeroes the body (true, the default) or
// seeks forward leaving existing bytes untouched (false) — the latter is
// for overwriting a removed element's framing without disturbing the bytes
// that used to be its body.
func (v *Element) SetFill(fill bool) {
	v.fill = fill
}

// Size returns the body byte count.
func (v *Element) Size() uint64 {
	return v.size
}

// Reserved returns the body byte count read back from a document, the
// supplemented read-back accessor named in SPEC_FULL.md §4 (the original
// spec only defines Size for elements under construction; this also
// reports what was actually read from a stream).
func (v *Element) Reserved() uint64 {
	return v.size
}

func (v *Element) BodySize() uint64 {
	return v.size
}

func (v *Element) sizeWidth() int {
	return vint.Size(v.size) + v.extraSize
}

func (v *Element) StoredSize() uint64 {
	idLen, _ := ids.Size(ids.Void)

	return uint64(idLen) + uint64(v.sizeWidth()) + v.size
}

func (v *Element) Write(w stream.RWS) (int64, error) {
	n, err := element.WriteHeader(w, &v.Base, v.size, v.sizeWidth())
	if err != nil {
		return n, err
	}

	if v.fill {
		if err := stream.Zero(w, int64(v.size)); err != nil {
			return n, err
		}
	} else if err := stream.Skip(w, int64(v.size)); err != nil {
		return n, err
	}

	return n + int64(v.size), nil
}

func (v *Element) Read(r stream.RWS) (int64, error) {
	size, sizeN, err := element.ReadHeader(r, &v.Base, 1)
	if err != nil {
		return 0, err
	}

	if err := stream.Skip(r, int64(size)); err != nil {
		return sizeN, errs.ErrReadError
	}
	v.size = size

	return sizeN + int64(size), nil
}
