package cache

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/seek"
)

// entrySize is 4 bytes target ID + 8 bytes offset per recorded Seek.
const entrySize = 12

// Save serialises m's entries (target ID, offset pairs, in insertion
// order) and writes them to w through codec, prefixed by the uncompressed
// length so Load can check that decompression returned every byte.
func Save(w io.Writer, codec Codec, m *seek.Metaseek) error {
	raw := make([]byte, 0, m.Size()*entrySize)

	for _, target := range snapshotTargets(m) {
		var entry [entrySize]byte
		binary.BigEndian.PutUint32(entry[0:4], uint32(target.id))
		binary.BigEndian.PutUint64(entry[4:12], target.offset)
		raw = append(raw, entry[:]...)
	}

	compressed, err := codec.Compress(raw)
	if err != nil {
		return fmt.Errorf("cache: compress snapshot: %w", err)
	}

	var header [8]byte
	binary.BigEndian.PutUint64(header[:], uint64(len(raw)))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("cache: write snapshot header: %w", err)
	}
	if _, err := w.Write(compressed); err != nil {
		return fmt.Errorf("cache: write snapshot body: %w", err)
	}

	return nil
}

// Load reads a snapshot written by Save and rebuilds a Metaseek from it.
// The rebuilt Metaseek's CRC setting is left at its own default (on); it
// has never been serialised to a real document, so there is nothing to
// verify against.
func Load(r io.Reader, codec Codec) (*seek.Metaseek, error) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("cache: read snapshot header: %w", err)
	}
	rawLen := binary.BigEndian.Uint64(header[:])

	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cache: read snapshot body: %w", err)
	}

	raw, err := codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("cache: decompress snapshot: %w", err)
	}
	if uint64(len(raw)) != rawLen {
		return nil, fmt.Errorf("cache: snapshot length mismatch: got %d want %d", len(raw), rawLen)
	}

	m := seek.New()
	for i := 0; i+entrySize <= len(raw); i += entrySize {
		id := ids.ID(binary.BigEndian.Uint32(raw[i : i+4]))
		offset := binary.BigEndian.Uint64(raw[i+4 : i+12])
		m.Insert(id, offset)
	}

	return m, nil
}

type snapshotEntry struct {
	id     ids.ID
	offset uint64
}

// snapshotTargets flattens m's children into (target, offset) pairs in
// insertion order; Metaseek doesn't expose its entry slice directly, only
// Children (via the embedded master.Base), Lookup, and Size.
func snapshotTargets(m *seek.Metaseek) []snapshotEntry {
	out := make([]snapshotEntry, 0, m.Size())

	for _, c := range m.Children() {
		if s, ok := c.(*seek.Seek); ok {
			out = append(out, snapshotEntry{id: s.Target(), offset: s.Offset()})
		}
	}

	return out
}
