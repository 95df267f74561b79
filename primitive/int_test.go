package primitive

import (
	"testing"

	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
	"github.com/gbiggs/tawara/vint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 127, -128, 0x3FFF, -0x4000, 9223372036854775807, -9223372036854775808}

	for _, v := range cases {
		ms := stream.NewMemStream(nil)

		e := NewInt(ids.EBMLVersion, v)
		n, err := e.Write(ms)
		require.NoError(t, err)
		require.EqualValues(t, e.StoredSize(), n)

		ms.Seek(0, 0)
		_, _, err = ids.Read(ms)
		require.NoError(t, err)

		got := NewInt(ids.EBMLVersion, 0)
		_, err = got.Read(ms)
		require.NoError(t, err)
		assert.Equal(t, v, got.Value())
	}
}

func TestIntDefault(t *testing.T) {
	e := NewInt(ids.EBMLVersion, -5)
	assert.False(t, e.IsDefault())

	e.SetDefault(-5)
	assert.True(t, e.IsDefault())

	e.SetValue(5)
	assert.False(t, e.IsDefault())
}

func TestIntTooLongRejected(t *testing.T) {
	sizeField, err := vint.Encode(9, 0)
	require.NoError(t, err)

	ms := stream.NewMemStream(sizeField)
	ms.Seek(0, 0)

	e := NewInt(ids.EBMLVersion, 0)
	_, err = e.Read(ms)
	require.Error(t, err)
}
