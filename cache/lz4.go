package cache

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool reuses lz4.Compressor instances, which hold internal
// hash-table state worth keeping warm across calls.
var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// LZ4Codec compresses an index snapshot with LZ4, favoring fast
// decompression over compression ratio — useful when a reopen path is
// latency-sensitive and the snapshot is read far more often than written.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// storeRaw/storeCompressed mark whether Compress's output is an LZ4 block
// or the input stored verbatim. CompressBlock returns n=0, nil when a
// block doesn't shrink (common for small or already-dense inputs like an
// index snapshot), so Compress can't use length alone to tell Decompress
// which case it's in.
const (
	storeRaw        byte = 0
	storeCompressed byte = 1
)

func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, 1+lz4.CompressBlockBound(len(data)))

	c, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(c)

	n, err := c.CompressBlock(data, dst[1:])
	if err != nil {
		return nil, err
	}

	if n == 0 {
		dst[0] = storeRaw
		return append(dst[:1], data...), nil
	}

	dst[0] = storeCompressed

	return dst[:1+n], nil
}

// Decompress grows its scratch buffer until the block fits, since LZ4
// block compression doesn't carry the decompressed size in-band.
func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	flag, body := data[0], data[1:]
	if flag == storeRaw {
		return body, nil
	}

	const maxSize = 128 * 1024 * 1024

	for bufSize := len(body)*4 + 16; bufSize <= maxSize; bufSize *= 2 {
		buf := make([]byte, bufSize)

		n, err := lz4.UncompressBlock(body, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
