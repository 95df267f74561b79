package seek

import (
	"github.com/gbiggs/tawara/element"
	"github.com/gbiggs/tawara/errs"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
	"github.com/gbiggs/tawara/master"
)

// Metaseek (a.k.a. SeekHead) is a master of zero or more Seek children.
// Logically it is a multimap ID → offset: insertion order is preserved,
// duplicate target IDs are allowed, and it is never sorted. CRC defaults
// on (spec.md §4.7).
type Metaseek struct {
	master.Base

	entries []*Seek
}

var _ element.Element = (*Metaseek)(nil)

// New creates an empty Metaseek.
func New() *Metaseek {
	return &Metaseek{Base: master.NewBase(ids.SeekHead, true)}
}

func (m *Metaseek) sync() {
	m.Base.Clear()
	for _, e := range m.entries {
		m.Append(e)
	}
}

// Insert appends a (target, offset) pair, preserving insertion order even
// if target already has an entry.
func (m *Metaseek) Insert(target ids.ID, offset uint64) {
	m.entries = append(m.entries, NewSeek(target, offset))
	m.sync()
}

// Lookup returns every recorded offset for target, in insertion order.
func (m *Metaseek) Lookup(target ids.ID) []uint64 {
	var offsets []uint64
	for _, e := range m.entries {
		if e.Target() == target {
			offsets = append(offsets, e.Offset())
		}
	}

	return offsets
}

// Size returns the number of recorded entries.
func (m *Metaseek) Size() int {
	return len(m.entries)
}

// Clear removes every entry. It shadows the embedded master.Base.Clear,
// which only empties the child list; Metaseek also needs to drop its own
// entries slice so Size/Lookup agree with what Write will produce.
func (m *Metaseek) Clear() {
	m.entries = nil
	m.Base.Clear()
}

// Remove deletes every entry for target, returning how many were removed.
// It is the read-back companion to Insert that SPEC_FULL.md §4 adds: the
// original spec only requires insert/lookup/size/clear, but a mutable
// index needs a way to retract a stale entry without rebuilding the whole
// Metaseek from scratch.
func (m *Metaseek) Remove(target ids.ID) int {
	kept := m.entries[:0:0]
	removed := 0

	for _, e := range m.entries {
		if e.Target() == target {
			removed++

			continue
		}

		kept = append(kept, e)
	}

	m.entries = kept
	m.sync()

	return removed
}

func (m *Metaseek) BodySize() uint64 {
	m.sync()

	return m.Base.BodySize()
}

func (m *Metaseek) StoredSize() uint64 {
	m.sync()

	return m.Base.StoredSize()
}

func (m *Metaseek) Write(w stream.RWS) (int64, error) {
	m.sync()

	return m.Base.Write(w)
}

func (m *Metaseek) dispatch(id ids.ID) (element.Element, error) {
	if id == ids.Seek {
		return NewSeek(0, 0), nil
	}

	return nil, errs.ErrInvalidChildID
}

func (m *Metaseek) Read(r stream.RWS) (int64, error) {
	m.entries = nil

	idLen, _ := ids.Size(ids.SeekHead)

	n, err := m.Base.Read(r, idLen, m.dispatch, nil)
	if err != nil {
		return n, err
	}

	for _, c := range m.Children() {
		if s, ok := c.(*Seek); ok {
			m.entries = append(m.entries, s)
		}
	}

	return n, nil
}
