// Package header implements the EBML Header (spec.md §4.8): the master
// element that opens every document, carrying version and doc-type fields
// with fixed defaults that are always written regardless of whether they
// equal their default.
package header

import (
	"github.com/gbiggs/tawara/element"
	"github.com/gbiggs/tawara/errs"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
	"github.com/gbiggs/tawara/master"
	"github.com/gbiggs/tawara/primitive"
)

// Defaults for the seven fields spec.md §3 fixes (DocType/DocTypeVersion/
// DocTypeReadVersion are this library's own flavour values, configurable
// via the tawara package's Option functions at Document-open time).
const (
	DefaultEBMLVersion     uint64 = 1
	DefaultEBMLReadVersion uint64 = 1
	DefaultMaxIDLength     uint64 = 4
	DefaultMaxSizeLength   uint64 = 8
)

// Header is the EBML Header master element, ID 0x1A45DFA3.
type Header struct {
	master.Base

	EBMLVersion        *primitive.UIntElement
	EBMLReadVersion    *primitive.UIntElement
	EBMLMaxIDLength    *primitive.UIntElement
	EBMLMaxSizeLength  *primitive.UIntElement
	DocType            *primitive.StringElement
	DocTypeVersion     *primitive.UIntElement
	DocTypeReadVersion *primitive.UIntElement
}

var _ element.Element = (*Header)(nil)

// New creates a Header with spec defaults and the given doc-type triple.
func New(docType string, docTypeVersion, docTypeReadVersion uint64) *Header {
	h := &Header{
		Base:               master.NewBase(ids.EBMLID, false),
		EBMLVersion:        primitive.NewUInt(ids.EBMLVersion, DefaultEBMLVersion),
		EBMLReadVersion:    primitive.NewUInt(ids.EBMLReadVersion, DefaultEBMLReadVersion),
		EBMLMaxIDLength:    primitive.NewUInt(ids.EBMLMaxIDLength, DefaultMaxIDLength),
		EBMLMaxSizeLength:  primitive.NewUInt(ids.EBMLMaxSizeLength, DefaultMaxSizeLength),
		DocType:            primitive.NewString(ids.DocType, docType),
		DocTypeVersion:     primitive.NewUInt(ids.DocTypeVersion, docTypeVersion),
		DocTypeReadVersion: primitive.NewUInt(ids.DocTypeReadVersion, docTypeReadVersion),
	}
	h.sync()

	return h
}

// sync rebuilds Base's child list from the typed fields, in the fixed
// order spec.md §4.8 requires.
func (h *Header) sync() {
	h.Clear()
	h.Append(h.EBMLVersion)
	h.Append(h.EBMLReadVersion)
	h.Append(h.EBMLMaxIDLength)
	h.Append(h.EBMLMaxSizeLength)
	h.Append(h.DocType)
	h.Append(h.DocTypeVersion)
	h.Append(h.DocTypeReadVersion)
}

func (h *Header) BodySize() uint64 {
	h.sync()

	return h.Base.BodySize()
}

func (h *Header) StoredSize() uint64 {
	h.sync()

	return h.Base.StoredSize()
}

func (h *Header) Write(w stream.RWS) (int64, error) {
	h.sync()

	return h.Base.Write(w)
}

// restoreDefaults resets every field to its spec default before Read, so
// any child absent from the stream keeps its default value (spec.md §4.8:
// "defaults are restored before reading").
func (h *Header) restoreDefaults() {
	h.EBMLVersion = primitive.NewUInt(ids.EBMLVersion, DefaultEBMLVersion)
	h.EBMLReadVersion = primitive.NewUInt(ids.EBMLReadVersion, DefaultEBMLReadVersion)
	h.EBMLMaxIDLength = primitive.NewUInt(ids.EBMLMaxIDLength, DefaultMaxIDLength)
	h.EBMLMaxSizeLength = primitive.NewUInt(ids.EBMLMaxSizeLength, DefaultMaxSizeLength)
	h.DocType = primitive.NewString(ids.DocType, "")
	h.DocTypeVersion = primitive.NewUInt(ids.DocTypeVersion, 0)
	h.DocTypeReadVersion = primitive.NewUInt(ids.DocTypeReadVersion, 0)
}

func (h *Header) dispatch(id ids.ID) (element.Element, error) {
	switch id {
	case ids.EBMLVersion:
		return h.EBMLVersion, nil
	case ids.EBMLReadVersion:
		return h.EBMLReadVersion, nil
	case ids.EBMLMaxIDLength:
		return h.EBMLMaxIDLength, nil
	case ids.EBMLMaxSizeLength:
		return h.EBMLMaxSizeLength, nil
	case ids.DocType:
		return h.DocType, nil
	case ids.DocTypeVersion:
		return h.DocTypeVersion, nil
	case ids.DocTypeReadVersion:
		return h.DocTypeReadVersion, nil
	default:
		return nil, errs.ErrInvalidChildID
	}
}

func (h *Header) Read(r stream.RWS) (int64, error) {
	h.restoreDefaults()

	idLen, _ := ids.Size(ids.EBMLID)

	n, err := h.Base.Read(r, idLen, h.dispatch, nil)
	if err != nil {
		return n, err
	}

	h.sync()

	return n, nil
}
