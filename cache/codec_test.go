package cache

import (
	"testing"

	"github.com/gbiggs/tawara/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodecAllTypes(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := NewCodec(ct)
		require.NoErrorf(t, err, "type=%s", ct)
		require.NotNil(t, codec)
	}
}

func TestNewCodecRejectsUnknown(t *testing.T) {
	_, err := NewCodec(format.CompressionType(0xFE))
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, repeated. the quick brown fox jumps over the lazy dog.")

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := NewCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoErrorf(t, err, "compress type=%s", ct)

		decompressed, err := codec.Decompress(compressed)
		require.NoErrorf(t, err, "decompress type=%s", ct)
		assert.Equalf(t, data, decompressed, "type=%s", ct)
	}
}

func TestEmptyInput(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := NewCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoErrorf(t, err, "type=%s", ct)

		decompressed, err := codec.Decompress(compressed)
		require.NoErrorf(t, err, "type=%s", ct)
		assert.Empty(t, decompressed)
	}
}
