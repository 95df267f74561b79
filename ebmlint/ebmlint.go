// Package ebmlint implements the EBML-integer body codec: fixed-width
// signed and unsigned integers whose sign-preserving leading bytes are
// trimmed, encoded as 0-8 big-endian bytes. See spec.md §3, §4.2, §6 and
// §8 property 4.
//
// Unlike vint, the length of an EBML integer's body is not
// self-describing: it is carried by the enclosing element's size field
// (spec.md §4.4), so Decode/Read here take the length as a parameter
// rather than discovering it from the bytes themselves.
package ebmlint

import (
	"io"

	"github.com/gbiggs/tawara/errs"
)

// SizeU returns the minimal number of bytes needed to hold v as an
// unsigned EBML integer. SizeU(0) is 0.
func SizeU(v uint64) int {
	if v == 0 {
		return 0
	}

	n := 0
	for v > 0 {
		n++
		v >>= 8
	}

	return n
}

// SizeS returns the minimal number of bytes needed to hold v as a signed,
// two's-complement EBML integer. SizeS(0) is 0.
func SizeS(v int64) int {
	if v == 0 {
		return 0
	}

	for n := 1; n <= 8; n++ {
		lo := -(int64(1) << (8*n - 1))
		hi := int64(1)<<(8*n-1) - 1
		if v >= lo && v <= hi {
			return n
		}
	}

	return 8
}

// EncodeU encodes v using its minimal unsigned width.
func EncodeU(v uint64) []byte {
	n := SizeU(v)
	buf := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}

	return buf
}

// EncodeS encodes v using its minimal signed, two's-complement width.
func EncodeS(v int64) []byte {
	n := SizeS(v)
	buf := make([]byte, n)
	uv := uint64(v)
	for i := n - 1; i >= 0; i-- {
		buf[i] = byte(uv)
		uv >>= 8
	}

	return buf
}

// DecodeU interprets b as a big-endian unsigned integer. An empty b
// decodes to 0.
func DecodeU(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}

	return v
}

// DecodeS interprets b as a big-endian, two's-complement signed integer,
// sign-extending from the MSB of the first byte. An empty b decodes to 0.
func DecodeS(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}

	var v int64
	if b[0]&0x80 != 0 {
		v = -1 // all bits set; left-shifting below preserves sign extension
	}
	for _, c := range b {
		v = v<<8 | int64(c)
	}

	return v
}

// ReadU reads n bytes from r and decodes them as an unsigned EBML integer.
// n must be in [0, 8], as validated by the caller against the element's
// declared body size.
func ReadU(r io.Reader, n int) (uint64, error) {
	if n == 0 {
		return 0, nil
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, errs.ErrReadError
	}

	return DecodeU(buf), nil
}

// ReadS reads n bytes from r and decodes them as a signed EBML integer.
func ReadS(r io.Reader, n int) (int64, error) {
	if n == 0 {
		return 0, nil
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, errs.ErrReadError
	}

	return DecodeS(buf), nil
}

// WriteU encodes v at its minimal width and writes it to w.
func WriteU(w io.Writer, v uint64) (int, error) {
	buf := EncodeU(v)

	n, err := w.Write(buf)
	if err != nil {
		return n, errs.ErrWriteError
	}

	return n, nil
}

// WriteS encodes v at its minimal width and writes it to w.
func WriteS(w io.Writer, v int64) (int, error) {
	buf := EncodeS(v)

	n, err := w.Write(buf)
	if err != nil {
		return n, errs.ErrWriteError
	}

	return n, nil
}
