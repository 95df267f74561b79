package primitive

import (
	"testing"

	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringRoundTripNoPadding(t *testing.T) {
	ms := stream.NewMemStream(nil)

	e := NewString(ids.DocType, "tide")
	n, err := e.Write(ms)
	require.NoError(t, err)
	require.EqualValues(t, e.StoredSize(), n)

	ms.Seek(0, 0)
	_, _, err = ids.Read(ms)
	require.NoError(t, err)

	got := NewString(ids.DocType, "")
	_, err = got.Read(ms)
	require.NoError(t, err)
	assert.Equal(t, "tide", got.Value())
	assert.Zero(t, got.Padding())
}

func TestStringRoundTripWithPadding(t *testing.T) {
	ms := stream.NewMemStream(nil)

	e := NewString(ids.DocType, "tide")
	e.SetPadding(4)
	n, err := e.Write(ms)
	require.NoError(t, err)
	require.EqualValues(t, e.StoredSize(), n)
	require.EqualValues(t, 8, e.BodySize())

	ms.Seek(0, 0)
	_, _, err = ids.Read(ms)
	require.NoError(t, err)

	got := NewString(ids.DocType, "")
	_, err = got.Read(ms)
	require.NoError(t, err)
	assert.Equal(t, "tide", got.Value())
	assert.Equal(t, 4, got.Padding())
}

func TestStringPaddingNotAddedAutomatically(t *testing.T) {
	e := NewString(ids.DocType, "tide")
	assert.EqualValues(t, 4, e.BodySize())
}

func TestStringDefault(t *testing.T) {
	e := NewString(ids.DocType, "tide")
	e.SetDefault("tide")
	assert.True(t, e.IsDefault())

	e.SetValue("jonen")
	assert.False(t, e.IsDefault())
}
