package primitive

import (
	"testing"
	"time"

	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
	"github.com/gbiggs/tawara/vint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRoundTrip(t *testing.T) {
	cases := []time.Time{
		epoch,
		epoch.Add(24 * time.Hour),
		epoch.Add(-24 * time.Hour),
		time.Date(2025, time.June, 15, 12, 30, 0, 123456789, time.UTC),
	}

	for _, v := range cases {
		ms := stream.NewMemStream(nil)

		e := NewDate(ids.EBMLVersion, v)
		n, err := e.Write(ms)
		require.NoError(t, err)
		require.EqualValues(t, e.StoredSize(), n)

		ms.Seek(0, 0)
		_, _, err = ids.Read(ms)
		require.NoError(t, err)

		got := NewDate(ids.EBMLVersion, time.Time{})
		_, err = got.Read(ms)
		require.NoError(t, err)
		assert.True(t, v.Equal(got.Value()))
	}
}

func TestDateBadSizeRejected(t *testing.T) {
	sizeField, err := vint.Encode(7, 0)
	require.NoError(t, err)

	ms := stream.NewMemStream(append(sizeField, make([]byte, 7)...))
	ms.Seek(0, 0)

	e := NewDate(ids.EBMLVersion, epoch)
	_, err = e.Read(ms)
	require.Error(t, err)
}
