package void

import (
	"testing"

	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
	"github.com/gbiggs/tawara/primitive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	ms := stream.NewMemStream(nil)

	v := New(10)
	n, err := v.Write(ms)
	require.NoError(t, err)
	require.EqualValues(t, v.StoredSize(), n)

	ms.Seek(0, 0)
	_, _, err = ids.Read(ms)
	require.NoError(t, err)

	got := New(0)
	_, err = got.Read(ms)
	require.NoError(t, err)
	assert.EqualValues(t, 10, got.Reserved())
}

func TestFillZeroesBody(t *testing.T) {
	ms := stream.NewMemStream(nil)

	v := New(4)
	_, err := v.Write(ms)
	require.NoError(t, err)

	raw := ms.Bytes()
	assert.Equal(t, []byte{0, 0, 0, 0}, raw[len(raw)-4:])
}

func TestNoFillPreservesExistingBytes(t *testing.T) {
	original := []byte{0xEC, 0x84, 0xAA, 0xBB, 0xCC, 0xDD}
	ms := stream.NewMemStream(original)
	ms.Seek(0, 0)

	v := New(4)
	v.SetFill(false)
	_, err := v.Write(ms)
	require.NoError(t, err)

	assert.Equal(t, original, ms.Bytes())
}

func TestNewForElementMatchesTargetSize(t *testing.T) {
	target := primitive.NewUInt(ids.EBMLVersion, 0x12345678)

	v := NewForElement(target)
	assert.Equal(t, target.StoredSize(), v.StoredSize())
}

func TestNewForElementSpendsExtraSizeByte(t *testing.T) {
	// A target whose stored size, minus the void ID byte, is itself
	// exactly representable at one size-field width shorter than what the
	// straightforward subtraction produces forces the one-extra-byte path.
	target := primitive.NewBinary(ids.SeekID, make([]byte, 125))

	v := NewForElement(target)
	assert.Equal(t, target.StoredSize(), v.StoredSize())
}
