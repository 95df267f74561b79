package primitive

import (
	"io"

	"github.com/gbiggs/tawara/errs"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/vint"
)

// sizeLen returns the VarInt width needed to encode a body size of n bytes.
func sizeLen(n uint64) int {
	return vint.Size(n)
}

// mustIDLen returns id's encoded length; primitive element IDs are always
// validated at construction time via the caller's use of the ids package,
// so a failure here indicates a programming error in this package, not
// caller input.
func mustIDLen(id ids.ID) int {
	n, err := ids.Size(id)
	if err != nil {
		panic("primitive: invalid element ID " + err.Error())
	}

	return n
}

// writeAll writes buf to w, translating a short write or I/O error into
// errs.ErrWriteError.
func writeAll(w io.Writer, buf []byte) (int, error) {
	n, err := w.Write(buf)
	if err != nil {
		return n, errs.ErrWriteError
	}
	if n != len(buf) {
		return n, errs.ErrWriteError
	}

	return n, nil
}
