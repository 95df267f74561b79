// Package segment implements the Segment skeleton (spec.md §4.10): the
// top-level master that holds a document's index, info, tracks, and
// clusters, written with an 8-byte oversized size field so its final size
// can be back-patched once every child has been streamed.
package segment

import (
	"github.com/gbiggs/tawara/element"
	"github.com/gbiggs/tawara/errs"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
	"github.com/gbiggs/tawara/seek"
	"github.com/gbiggs/tawara/vint"
	"github.com/gbiggs/tawara/void"
)

// sizeFieldWidth is the fixed 8-byte width spec.md §4.10 requires so a
// later back-patch never has to move bytes.
const sizeFieldWidth = 8

// Segment is the top-level master element, ID 0x18538067. Unlike the
// other masters in this module, it does not use master.Base: its body may
// contain opaque collaborator elements (Info, Tracks, Cluster) this
// library doesn't model, so it walks its body manually rather than through
// master.Dispatcher's closed child-ID switch.
type Segment struct {
	element.Base

	SeekHead *seek.Metaseek

	// VoidReserved is the total body size, across every Void child found by
	// WalkChildren, reserved for the SeekHead (or other leading elements) to
	// grow into without relocating everything after it.
	VoidReserved uint64

	bodyOffset int64
	hasOffset  bool
	bodySize   uint64
}

var _ element.Element = (*Segment)(nil)

// New creates an empty, unopened Segment.
func New() *Segment {
	return &Segment{Base: element.NewBase(ids.Segment)}
}

func (s *Segment) BodySize() uint64 {
	return s.bodySize
}

func (s *Segment) StoredSize() uint64 {
	idLen, _ := ids.Size(ids.Segment)

	return uint64(idLen) + sizeFieldWidth + s.bodySize
}

// BodyOffset returns the stream position of the first byte of the
// segment's body, valid after StartWrite or Read. Collaborator elements
// use it to compute their segment-relative offset as
// current_stream_position - BodyOffset().
func (s *Segment) BodyOffset() (int64, bool) {
	return s.bodyOffset, s.hasOffset
}

// StartWrite writes the Segment's ID and an 8-byte placeholder size field,
// recording the body's start offset for later use by Finalise and by
// collaborators computing segment-relative offsets.
func (s *Segment) StartWrite(w stream.RWS) (int64, error) {
	n, err := element.WriteHeader(w, &s.Base, 0, sizeFieldWidth)
	if err != nil {
		return n, err
	}

	pos, err := stream.Tell(w)
	if err != nil {
		return n, err
	}

	s.bodyOffset = pos
	s.hasOffset = true

	return n, nil
}

// Finalise computes the body size from the current stream position,
// rewrites the 8-byte size field in place, and leaves the stream positioned
// at the end of the segment (spec.md §4.7's back-patching protocol).
func (s *Segment) Finalise(w stream.RWS) error {
	if !s.hasOffset {
		return errs.ErrWriteError
	}

	end, err := stream.Tell(w)
	if err != nil {
		return err
	}

	s.bodySize = uint64(end - s.bodyOffset)

	offset, _ := s.Offset()
	idLen, _ := ids.Size(ids.Segment)

	if _, err := w.Seek(offset+int64(idLen), 0); err != nil {
		return errs.ErrWriteError
	}

	if _, err := vint.Write(w, s.bodySize, sizeFieldWidth); err != nil {
		return err
	}

	if _, err := w.Seek(end, 0); err != nil {
		return errs.ErrWriteError
	}

	return nil
}

// WriteVoid writes a Void element reserving size body bytes. Called
// between StartWrite and Finalise (typically right after the SeekHead) to
// leave growth room the SeekHead can later expand into in place, rather
// than forcing every Cluster after it to shift when a new Seek entry is
// appended.
func (s *Segment) WriteVoid(w stream.RWS, size uint64) (int64, error) {
	return void.New(size).Write(w)
}

// Write is StartWrite immediately followed by Finalise with no children in
// between, producing a valid but empty, already-closed segment. Callers
// assembling a real document use StartWrite/Finalise directly so they can
// stream children between the two.
func (s *Segment) Write(w stream.RWS) (int64, error) {
	n, err := s.StartWrite(w)
	if err != nil {
		return n, err
	}

	if err := s.Finalise(w); err != nil {
		return n, err
	}

	return n, nil
}

// Read reads the Segment's size field, assuming the ID has already been
// consumed, and records the body's start offset. It does not walk the
// body: collaborator content (SeekHead, Info, Tracks, Cluster) is read on
// demand via WalkChildren.
func (s *Segment) Read(r stream.RWS) (int64, error) {
	size, sizeN, err := element.ReadHeader(r, &s.Base, mustSegmentIDLen())
	if err != nil {
		return 0, err
	}

	s.bodySize = size

	pos, err := stream.Tell(r)
	if err != nil {
		return sizeN, err
	}

	s.bodyOffset = pos
	s.hasOffset = true

	return sizeN, nil
}

// WalkChildren reads the segment's body in declaration order, dispatching
// SeekHead to seek.Metaseek, accumulating Void children into VoidReserved,
// and skipping every other (collaborator) child via element.Skip, per
// spec.md §4.10: "children that are not defined by this spec are treated
// as opaque ... walked via skip".
func (s *Segment) WalkChildren(r stream.RWS) error {
	if !s.hasOffset {
		return errs.ErrReadError
	}

	end := s.bodyOffset + int64(s.bodySize)

	for {
		pos, err := stream.Tell(r)
		if err != nil {
			return err
		}
		if pos >= end {
			break
		}

		id, idN, err := ids.Read(r)
		if err != nil {
			return err
		}

		if id == ids.SeekHead {
			sh := seek.New()
			if _, err := sh.Read(r); err != nil {
				return err
			}

			s.SeekHead = sh

			continue
		}

		if id == ids.Void {
			v := void.New(0)
			if _, err := v.Read(r); err != nil {
				return err
			}

			s.VoidReserved += v.Reserved()

			continue
		}

		if _, err := element.Skip(r, false); err != nil {
			return err
		}
		_ = idN
	}

	return nil
}

func mustSegmentIDLen() int {
	n, err := ids.Size(ids.Segment)
	if err != nil {
		panic("segment: invalid Segment ID: " + err.Error())
	}

	return n
}
