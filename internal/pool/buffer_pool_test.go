package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	b := New(1024)
	require.NotNil(t, b)
	assert.Zero(t, b.Len())
	assert.Equal(t, 1024, cap(b.B))
}

func TestWriteGrows(t *testing.T) {
	b := New(4)
	n, err := b.Write([]byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, []byte("hello world"), b.Bytes())
}

func TestResetRetainsCapacity(t *testing.T) {
	b := New(64)
	_, _ = b.Write([]byte("data"))
	cap0 := cap(b.B)

	b.Reset()

	assert.Zero(t, b.Len())
	assert.Equal(t, cap0, cap(b.B))
}

func TestWriteToWriter(t *testing.T) {
	b := New(16)
	_, _ = b.Write([]byte("payload"))

	var out []byte
	n, err := b.WriteTo(&sliceWriter{&out})
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, []byte("payload"), out)
}

func TestGetPutRoundTrip(t *testing.T) {
	b := Get()
	require.NotNil(t, b)
	_, _ = b.Write([]byte("x"))

	Put(b)

	b2 := Get()
	assert.Zero(t, b2.Len(), "pooled buffer should come back reset")
}

func TestPutDiscardsOversizedBuffer(t *testing.T) {
	b := New(MaxThreshold + 1)
	Put(b) // must not panic; buffer is simply dropped

	assert.True(t, true)
}

type sliceWriter struct {
	dst *[]byte
}

func (w *sliceWriter) Write(p []byte) (int, error) {
	*w.dst = append(*w.dst, p...)
	return len(p), nil
}
