package cache

import (
	"bytes"
	"testing"

	"github.com/gbiggs/tawara/format"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/seek"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := NewCodec(ct)
		require.NoErrorf(t, err, "type=%s", ct)

		m := seek.New()
		m.Insert(ids.Segment, 10)
		m.Insert(ids.Cluster, 200)
		m.Insert(ids.Cluster, 3000)

		var buf bytes.Buffer
		require.NoErrorf(t, Save(&buf, codec, m), "type=%s", ct)

		got, err := Load(&buf, codec)
		require.NoErrorf(t, err, "type=%s", ct)

		assert.Equalf(t, m.Size(), got.Size(), "type=%s", ct)
		assert.Equalf(t, []uint64{10}, got.Lookup(ids.Segment), "type=%s", ct)
		assert.Equalf(t, []uint64{200, 3000}, got.Lookup(ids.Cluster), "type=%s", ct)
	}
}

func TestLoadEmptySnapshot(t *testing.T) {
	codec, err := NewCodec(format.CompressionNone)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, codec, seek.New()))

	got, err := Load(&buf, codec)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Size())
}
