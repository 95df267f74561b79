// Package ids implements the EBML ID codec (spec.md §3, §4.3): a thin
// wrapper over vint restricted to 1-4 bytes, with the reserved all-ones
// patterns rejected. It also exports the well-known element IDs this
// library needs (spec.md §6) plus the rest of the vocabulary the original
// tide/el_ids.h carries, so collaborator code assembling Block/Cluster/
// Tracks elements (out of scope here) can reuse the same constants
// instead of re-declaring them.
package ids

import (
	"io"
	"math/bits"

	"github.com/gbiggs/tawara/errs"
)

// ID is an EBML element ID: the full encoded representation including its
// length-indicator bits, not the extracted integer value. Two IDs encoded
// at different widths (which never happens for a minimally-encoded ID,
// but can for a caller-padded one) are different ID values by design,
// matching spec.md §3's "value is the full encoded representation".
type ID uint32

// Well-known IDs (spec.md §6).
const (
	Void     ID = 0xEC
	CRC32    ID = 0xBF
	EBMLID   ID = 0x1A45DFA3
	Segment  ID = 0x18538067
	SeekHead ID = 0x114D9B74
	Seek     ID = 0x4DBB
	SeekID   ID = 0x53AB
	SeekPos  ID = 0x53AC

	EBMLVersion        ID = 0x4286
	EBMLReadVersion    ID = 0x42F7
	EBMLMaxIDLength    ID = 0x42F2
	EBMLMaxSizeLength  ID = 0x42F3
	DocType            ID = 0x4282
	DocTypeVersion     ID = 0x4287
	DocTypeReadVersion ID = 0x4285
)

// Reserved-but-out-of-core IDs, exported per SPEC_FULL.md §4 so that
// collaborator code (Block/Cluster/Tracks, outside this library's scope)
// can share the same ID vocabulary as the original tide/el_ids.h instead
// of re-declaring it. None of these are interpreted anywhere in this
// module; Segment treats them as opaque children walked via element.Skip.
const (
	Info        ID = 0x1549A966
	Tracks      ID = 0x1654AE6B
	TrackEntry  ID = 0xAE
	Cluster     ID = 0x1F43B675
	Timestamp   ID = 0xE7
	SimpleBlock ID = 0xA3
	BlockGroup  ID = 0xA0
	Block       ID = 0xA1
)

// reserved holds the all-ones bit patterns for each of the four ID
// widths; these are never valid IDs (spec.md §3, §6).
var reserved = map[uint32]struct{}{
	0x00:       {}, // no length-indicator bit at all, so also invalid
	0xFF:       {},
	0xFFFF:     {},
	0xFFFFFF:   {},
	0xFFFFFFFF: {},
}

// Validate rejects the reserved all-ones ID patterns.
func Validate(id ID) error {
	if _, bad := reserved[uint32(id)]; bad {
		return errs.ErrInvalidEBMLID
	}

	return nil
}

// Size returns the encoded length, in bytes, of id: 1-4, taken directly
// from id's own leading length-indicator bit (the same bit idLenFromFirstByte
// reads off the wire), not re-derived as if id were a bare integer that
// still needed a VarInt length indicator assigned to it — id already is
// the full encoded representation (spec.md §3). It returns ErrInvalidEBMLID
// for a reserved or out-of-range id.
func Size(id ID) (int, error) {
	if err := Validate(id); err != nil {
		return 0, err
	}

	n := (bits.Len32(uint32(id)) + 7) / 8
	if n == 0 || n > 4 {
		return 0, errs.ErrInvalidEBMLID
	}

	return n, nil
}

// Encode returns the id_len(id) bytes of id, MSB first, length-indicator
// bits included.
func Encode(id ID) ([]byte, error) {
	n, err := Size(id)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, n)
	v := uint32(id)
	for i := n - 1; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}

	return buf, nil
}

// Write writes the encoded form of id to w.
func Write(w io.Writer, id ID) (int, error) {
	buf, err := Encode(id)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(buf)
	if err != nil {
		return n, errs.ErrWriteError
	}

	return n, nil
}

// Read reads one EBML ID from r, determining its length from the first
// byte's leading 1-bit, and validates it against the reserved set.
func Read(r io.Reader) (ID, int, error) {
	var first [1]byte
	if _, err := io.ReadFull(r, first[:]); err != nil {
		return 0, 0, errs.ErrReadError
	}

	n, err := idLenFromFirstByte(first[0])
	if err != nil {
		return 0, 0, err
	}

	rest := make([]byte, n-1)
	if n > 1 {
		if _, err := io.ReadFull(r, rest); err != nil {
			return 0, 0, errs.ErrReadError
		}
	}

	v := uint32(first[0])
	for _, b := range rest {
		v = v<<8 | uint32(b)
	}

	id := ID(v)
	if err := Validate(id); err != nil {
		return 0, 0, err
	}

	return id, n, nil
}

// idLenFromFirstByte finds the position of the leading 1-bit in b,
// giving the ID's total encoded length (1-4 bytes).
func idLenFromFirstByte(b byte) (int, error) {
	for n, mask := 1, byte(0x80); n <= 4; n, mask = n+1, mask>>1 {
		if b&mask != 0 {
			return n, nil
		}
	}

	return 0, errs.ErrInvalidEBMLID
}
