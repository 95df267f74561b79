// Package seek implements Seek and Metaseek (SeekHead) (spec.md §4.9): a
// master recording one (target ID, segment-relative offset) pair, and a
// master multimap of such pairs persisted at the start of a segment.
package seek

import (
	"github.com/gbiggs/tawara/element"
	"github.com/gbiggs/tawara/errs"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
	"github.com/gbiggs/tawara/master"
	"github.com/gbiggs/tawara/primitive"
)

// Seek is a master with two required children: SeekID (the binary
// encoding of the target element's ID) and SeekPosition (its
// segment-relative byte offset). CRC is off by default.
type Seek struct {
	master.Base

	SeekID       *primitive.BinaryElement
	SeekPosition *primitive.UIntElement
}

var _ element.Element = (*Seek)(nil)

// NewSeek creates a Seek recording that target is found at segment-relative
// offset.
func NewSeek(target ids.ID, offset uint64) *Seek {
	idBytes, _ := ids.Encode(target)

	s := &Seek{
		Base:         master.NewBase(ids.Seek, false),
		SeekID:       primitive.NewBinary(ids.SeekID, idBytes),
		SeekPosition: primitive.NewUInt(ids.SeekPos, offset),
	}
	s.sync()

	return s
}

func (s *Seek) sync() {
	s.Clear()
	s.Append(s.SeekID)
	s.Append(s.SeekPosition)
}

// Target decodes SeekID's body back into an ids.ID.
func (s *Seek) Target() ids.ID {
	var v uint32
	for _, b := range s.SeekID.Value() {
		v = v<<8 | uint32(b)
	}

	return ids.ID(v)
}

// Offset returns the segment-relative byte offset of the indexed element.
func (s *Seek) Offset() uint64 {
	return s.SeekPosition.Value()
}

func (s *Seek) BodySize() uint64 {
	s.sync()

	return s.Base.BodySize()
}

func (s *Seek) StoredSize() uint64 {
	s.sync()

	return s.Base.StoredSize()
}

func (s *Seek) Write(w stream.RWS) (int64, error) {
	s.sync()

	return s.Base.Write(w)
}

func (s *Seek) dispatch(id ids.ID) (element.Element, error) {
	switch id {
	case ids.SeekID:
		return s.SeekID, nil
	case ids.SeekPos:
		return s.SeekPosition, nil
	default:
		return nil, errs.ErrInvalidChildID
	}
}

func (s *Seek) Read(r stream.RWS) (int64, error) {
	s.SeekID = primitive.NewBinary(ids.SeekID, nil)
	s.SeekPosition = primitive.NewUInt(ids.SeekPos, 0)

	idLen, _ := ids.Size(ids.Seek)

	n, err := s.Base.Read(r, idLen, s.dispatch, []ids.ID{ids.SeekID, ids.SeekPos})
	if err != nil {
		return n, err
	}

	s.sync()

	return n, nil
}
