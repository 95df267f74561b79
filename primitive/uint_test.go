package primitive

import (
	"testing"

	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
	"github.com/gbiggs/tawara/vint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUIntRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 0x3FFF, 0x4000, 0xFFFFFFFFFFFFFFFF}

	for _, v := range cases {
		ms := stream.NewMemStream(nil)

		e := NewUInt(ids.EBMLVersion, v)
		n, err := e.Write(ms)
		require.NoError(t, err)
		require.EqualValues(t, e.StoredSize(), n)

		ms.Seek(0, 0)
		_, _, err = ids.Read(ms)
		require.NoError(t, err)

		got := NewUInt(ids.EBMLVersion, 0)
		_, err = got.Read(ms)
		require.NoError(t, err)
		assert.Equal(t, v, got.Value())
	}
}

func TestUIntDefault(t *testing.T) {
	e := NewUInt(ids.EBMLVersion, 1)
	assert.False(t, e.HasDefault())
	assert.False(t, e.IsDefault())

	e.SetDefault(1)
	assert.True(t, e.HasDefault())
	assert.True(t, e.IsDefault())

	e.SetValue(2)
	assert.False(t, e.IsDefault())

	e.RemoveDefault()
	assert.False(t, e.HasDefault())
	assert.False(t, e.IsDefault())
}

func TestUIntTooLongRejected(t *testing.T) {
	// A declared body size of 9 (one past the 8-byte maximum) is rejected
	// as soon as the size field is parsed, before any body bytes are read.
	sizeField, err := vint.Encode(9, 0)
	require.NoError(t, err)

	ms := stream.NewMemStream(sizeField)
	ms.Seek(0, 0)

	e := NewUInt(ids.EBMLVersion, 0)
	_, err = e.Read(ms)
	require.Error(t, err)
}
