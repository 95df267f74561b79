package cache

import (
	"fmt"

	"github.com/gbiggs/tawara/format"
)

// Compressor compresses a serialized index snapshot.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a previously compressed snapshot.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. Save/Load take a Codec so the
// same sidecar format works uncompressed or with any of the backends
// below.
type Codec interface {
	Compressor
	Decompressor
}

// NewCodec is a factory function that creates a Codec for the given
// compression type.
func NewCodec(t format.CompressionType) (Codec, error) {
	switch t {
	case format.CompressionNone:
		return NoOpCodec{}, nil
	case format.CompressionZstd:
		return ZstdCodec{}, nil
	case format.CompressionS2:
		return S2Codec{}, nil
	case format.CompressionLZ4:
		return LZ4Codec{}, nil
	default:
		return nil, fmt.Errorf("cache: unsupported compression type: %s", t)
	}
}
