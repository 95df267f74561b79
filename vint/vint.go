// Package vint implements the EBML VarInt codec: a self-describing,
// length-prefixed unsigned integer used for element IDs and body-size
// fields. See spec.md §3, §4.1, §6 and §8 properties 1-3.
//
// A VarInt's encoded length is the position (1-based, MSB first) of the
// leading 1-bit in its first byte. The remaining bits of that byte, plus
// all following bytes, hold the value MSB-first. The all-ones bit pattern
// at a given width is reserved ("unknown size" in EBML terms) and is never
// produced by Encode.
package vint

import (
	"io"

	"github.com/gbiggs/tawara/errs"
)

// MaxValue is the largest value representable by an 8-byte VarInt: 2^56-2.
// The all-ones pattern at width 8 is reserved, so the usable range tops
// out one below 2^56-1.
const MaxValue = (1 << 56) - 2

// lengthMarker holds, for each 1-based width n (index n-1), the leading
// bit mask that marks a first byte as belonging to a VarInt of that width.
var lengthMarker = [8]byte{
	0x80, 0x40, 0x20, 0x10, 0x08, 0x04, 0x02, 0x01,
}

// Size returns the minimal VarInt width, in bytes, needed to encode v.
// Size panics never; callers pass values already checked against MaxValue
// via Encode/Write, which is where out-of-range values are rejected.
func Size(v uint64) int {
	for n := 1; n <= 8; n++ {
		// Reserved value at width n is 2^(7n)-1; valid range is [0, 2^(7n)-2].
		limit := uint64(1)<<(7*n) - 1
		if v < limit {
			return n
		}
	}

	return 8
}

// Encode encodes v as a VarInt. If width is 0, the minimal width is used;
// otherwise width bytes are produced (width must be >= the minimal size),
// which is how callers reserve room for later back-patching of a larger
// final value.
func Encode(v uint64, width int) ([]byte, error) {
	if v > MaxValue {
		return nil, errs.ErrVarIntTooBig
	}

	minWidth := Size(v)
	if width == 0 {
		width = minWidth
	} else if width < minWidth {
		return nil, errs.ErrSpecSizeTooSmall
	}
	if width > 8 {
		return nil, errs.ErrVarIntTooBig
	}

	buf := make([]byte, width)
	for i := width - 1; i > 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	buf[0] = lengthMarker[width-1] | byte(v)

	return buf, nil
}

// Decode reads a VarInt from the front of b, returning its value and the
// number of bytes consumed.
func Decode(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, errs.ErrBufferTooSmall
	}

	first := b[0]
	if first == 0 {
		return 0, 0, errs.ErrInvalidVarInt
	}

	n := 1
	for first&lengthMarker[n-1] == 0 {
		n++
	}

	if len(b) < n {
		return 0, 0, errs.ErrBufferTooSmall
	}

	v := uint64(first &^ lengthMarker[n-1])
	for i := 1; i < n; i++ {
		v = v<<8 | uint64(b[i])
	}

	return v, n, nil
}

// Read decodes a VarInt from r, a byte at a time, so that it never reads
// past the VarInt's own boundary.
func Read(r io.Reader) (uint64, int, error) {
	var first [1]byte
	if _, err := io.ReadFull(r, first[:]); err != nil {
		return 0, 0, errs.ErrReadError
	}

	if first[0] == 0 {
		return 0, 0, errs.ErrInvalidVarInt
	}

	n := 1
	for first[0]&lengthMarker[n-1] == 0 {
		n++
	}

	rest := make([]byte, n-1)
	if n > 1 {
		if _, err := io.ReadFull(r, rest); err != nil {
			return 0, 0, errs.ErrReadError
		}
	}

	v := uint64(first[0] &^ lengthMarker[n-1])
	for _, b := range rest {
		v = v<<8 | uint64(b)
	}

	return v, n, nil
}

// Write encodes v and writes it to w, returning the number of bytes
// written. width behaves as in Encode.
func Write(w io.Writer, v uint64, width int) (int, error) {
	buf, err := Encode(v, width)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(buf)
	if err != nil {
		return n, errs.ErrWriteError
	}

	return n, nil
}
