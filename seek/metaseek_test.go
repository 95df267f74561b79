package seek

import (
	"testing"

	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaseekRoundTrip(t *testing.T) {
	m := New()
	m.Insert(ids.Segment, 100)
	m.Insert(ids.Cluster, 200)
	m.Insert(ids.Cluster, 300) // duplicate target, preserved

	ms := stream.NewMemStream(nil)
	n, err := m.Write(ms)
	require.NoError(t, err)
	require.EqualValues(t, m.StoredSize(), n)

	ms.Seek(0, 0)
	_, _, err = ids.Read(ms)
	require.NoError(t, err)

	got := New()
	_, err = got.Read(ms)
	require.NoError(t, err)

	assert.Equal(t, 3, got.Size())
	assert.Equal(t, []uint64{200, 300}, got.Lookup(ids.Cluster))
	assert.Equal(t, []uint64{100}, got.Lookup(ids.Segment))
	assert.True(t, got.UseCRC())
}

func TestMetaseekCRCOnByDefault(t *testing.T) {
	m := New()
	assert.True(t, m.UseCRC())
}

func TestMetaseekRemove(t *testing.T) {
	m := New()
	m.Insert(ids.Segment, 1)
	m.Insert(ids.Cluster, 2)
	m.Insert(ids.Segment, 3)

	removed := m.Remove(ids.Segment)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, m.Size())
	assert.Empty(t, m.Lookup(ids.Segment))
	assert.Equal(t, []uint64{2}, m.Lookup(ids.Cluster))
}

func TestMetaseekClear(t *testing.T) {
	m := New()
	m.Insert(ids.Segment, 1)
	m.Clear()

	assert.Equal(t, 0, m.Size())
}
