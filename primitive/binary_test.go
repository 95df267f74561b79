package primitive

import (
	"testing"

	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryRoundTrip(t *testing.T) {
	ms := stream.NewMemStream(nil)

	want := []byte{0x01, 0x02, 0x00, 0x03, 0xFF}
	e := NewBinary(ids.SeekID, want)
	n, err := e.Write(ms)
	require.NoError(t, err)
	require.EqualValues(t, e.StoredSize(), n)

	ms.Seek(0, 0)
	_, _, err = ids.Read(ms)
	require.NoError(t, err)

	got := NewBinary(ids.SeekID, nil)
	_, err = got.Read(ms)
	require.NoError(t, err)
	assert.Equal(t, want, got.Value())
}

func TestBinaryEmptyBody(t *testing.T) {
	ms := stream.NewMemStream(nil)

	e := NewBinary(ids.SeekID, nil)
	_, err := e.Write(ms)
	require.NoError(t, err)
	assert.EqualValues(t, 0, e.BodySize())
}

func TestBinaryDefault(t *testing.T) {
	e := NewBinary(ids.SeekID, []byte{1, 2, 3})
	assert.False(t, e.IsDefault())

	e.SetDefault([]byte{1, 2, 3})
	assert.True(t, e.IsDefault())

	e.SetValue([]byte{1, 2, 4})
	assert.False(t, e.IsDefault())
}
