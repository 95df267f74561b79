package tawara

import (
	"testing"

	"github.com/gbiggs/tawara/errs"
	"github.com/gbiggs/tawara/ids"
	"github.com/gbiggs/tawara/internal/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenEmptyStreamWritesFreshHeaderAndSegment(t *testing.T) {
	ms := stream.NewMemStream(nil)

	doc, err := Open(ms)
	require.NoError(t, err)
	require.NotNil(t, doc.Header)
	require.NotNil(t, doc.Segment)

	assert.Equal(t, DefaultDocType, doc.Header.DocType.Value())

	bodyOffset, ok := doc.Segment.BodyOffset()
	assert.True(t, ok)
	assert.Greater(t, bodyOffset, int64(0))
}

func TestOpenRoundTrip(t *testing.T) {
	ms := stream.NewMemStream(nil)

	doc, err := Open(ms)
	require.NoError(t, err)
	require.NoError(t, doc.Segment.Finalise(ms))

	ms.Seek(0, 0)

	reopened, err := Open(ms)
	require.NoError(t, err)
	assert.Equal(t, DefaultDocType, reopened.Header.DocType.Value())
	assert.Equal(t, doc.Segment.BodySize(), reopened.Segment.BodySize())
}

func TestDocumentFinaliseRoundTripsSeekHead(t *testing.T) {
	ms := stream.NewMemStream(nil)

	doc, err := Open(ms)
	require.NoError(t, err)

	doc.Segment.SeekHead.Insert(ids.Cluster, 1024)
	doc.Segment.SeekHead.Insert(ids.Info, 64)

	require.NoError(t, doc.Finalise(ms))

	ms.Seek(0, 0)

	reopened, err := Open(ms)
	require.NoError(t, err)
	require.NotNil(t, reopened.Segment.SeekHead)
	assert.Equal(t, []uint64{1024}, reopened.Segment.SeekHead.Lookup(ids.Cluster))
	assert.Equal(t, []uint64{64}, reopened.Segment.SeekHead.Lookup(ids.Info))
}

func TestOpenWrongDocTypeRejected(t *testing.T) {
	ms := stream.NewMemStream(nil)

	_, err := Open(ms, WithDocType("jonen"))
	require.NoError(t, err)

	ms.Seek(0, 0)

	_, err = Open(ms, WithDocType("tide"))
	require.ErrorIs(t, err, errs.ErrNotTide)
}

func TestOpenBadDocTypeReadVersionRejected(t *testing.T) {
	ms := stream.NewMemStream(nil)

	_, err := Open(ms, WithDocType("tide"), WithDocTypeReadVersion(5))
	require.NoError(t, err)

	ms.Seek(0, 0)

	_, err = Open(ms, WithDocType("tide"), WithDocTypeReadVersion(1))
	require.ErrorIs(t, err, errs.ErrBadDocReadVersion)
}
