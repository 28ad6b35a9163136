package group

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/readtable/readtable/cell"
	"github.com/readtable/readtable/errs"
	"github.com/readtable/readtable/format"
	"github.com/readtable/readtable/rowrange"
	"github.com/readtable/readtable/schema"
)

type memSink struct {
	blobs map[int][]byte
}

func newMemSink() *memSink { return &memSink{blobs: make(map[int][]byte)} }

func (s *memSink) WriteBlob(fileNr int, data []byte) error {
	s.blobs[fileNr] = append([]byte(nil), data...)

	return nil
}

type memSource struct {
	blobs     map[int][]byte
	fetches   map[int]int
	failOnNr  map[int]bool
}

func newMemSource(blobs map[int][]byte) *memSource {
	return &memSource{blobs: blobs, fetches: make(map[int]int), failOnNr: make(map[int]bool)}
}

func (s *memSource) FetchBlob(_ context.Context, fileNr int) ([]byte, error) {
	s.fetches[fileNr]++
	if s.failOnNr[fileNr] {
		return nil, errors.New("injected fetch failure")
	}

	data, ok := s.blobs[fileNr]
	if !ok {
		return nil, errs.ErrFetchNotFound
	}

	return data, nil
}

func testColumns() map[schema.ColumnName]schema.ColumnDef {
	return map[schema.ColumnName]schema.ColumnDef{
		"READ": {Comp: format.CompNone, Level: 0, Group: "reads"},
		"QUAL": {Comp: format.CompNone, Level: 0, Group: "reads"},
	}
}

func testGroupDef(cutoff int) schema.GroupDef {
	return schema.GroupDef{Comp: format.CompNone, Level: 0, Cutoff: cutoff, Cols: []schema.ColumnName{"READ", "QUAL"}}
}

func TestWriter_RoundTrip(t *testing.T) {
	sink := newMemSink()
	var blobmap rowrange.BlobMap

	def := testGroupDef(1 << 20) // large cutoff: everything lands in one blob
	w := NewWriter("reads", def, testColumns(), sink)

	reads := []string{"AAAA", "CCCCCC", "G", "TT", "ACGT"}
	quals := []string{"!!!!", "####", "?", "@@", "BBBB"}

	for i := range reads {
		require.NoError(t, w.WriteCell("READ", cell.Str(reads[i]), len(reads[i])))
		require.NoError(t, w.WriteCell("QUAL", cell.Str(quals[i]), len(quals[i])))
		require.NoError(t, w.CloseRow(&blobmap))
	}
	require.NoError(t, w.Finish(&blobmap))

	require.True(t, blobmap.Contiguous())
	require.Equal(t, 5, blobmap.TotalRows())

	source := newMemSource(sink.blobs)
	r := NewReader("reads", def, testColumns(), blobmap, source, nil)
	r.SetWindow(context.Background(), 0, 5)

	for i := range reads {
		c, err := r.Get(i, "READ")
		require.NoError(t, err)
		s, ok := c.StrValue()
		require.True(t, ok)
		require.Equal(t, reads[i], s)
	}
}

func TestWriter_CutoffDiscipline(t *testing.T) {
	sink := newMemSink()
	var blobmap rowrange.BlobMap

	def := testGroupDef(16)
	w := NewWriter("reads", def, testColumns(), sink)

	reads := []string{"AAAA", "CCCCCC", "G", "TT", "ACGT"}
	quals := []string{"!!!!", "####", "?", "@@", "BBBB"}

	for i := range reads {
		require.NoError(t, w.WriteCell("READ", cell.Str(reads[i]), len(reads[i])))
		require.NoError(t, w.WriteCell("QUAL", cell.Str(quals[i]), len(quals[i])))
		require.NoError(t, w.CloseRow(&blobmap))
	}
	require.NoError(t, w.Finish(&blobmap))

	require.GreaterOrEqual(t, len(blobmap), 2)
	require.True(t, blobmap.Contiguous())
	require.Equal(t, 5, blobmap.TotalRows())
	require.Equal(t, len(blobmap), len(sink.blobs))
}

func TestWriter_UnknownColumn(t *testing.T) {
	w := NewWriter("reads", testGroupDef(100), testColumns(), newMemSink())
	err := w.WriteCell("BOGUS", cell.Str("x"), 1)
	require.ErrorIs(t, err, errs.ErrUnknownColumn)
}

func TestWriter_NullPadding(t *testing.T) {
	sink := newMemSink()
	var blobmap rowrange.BlobMap

	def := testGroupDef(1 << 20)
	w := NewWriter("reads", def, testColumns(), sink)

	require.NoError(t, w.WriteCell("READ", cell.Str("A"), 1))
	// QUAL not written this row.
	require.NoError(t, w.CloseRow(&blobmap))
	require.NoError(t, w.Finish(&blobmap))

	source := newMemSource(sink.blobs)
	r := NewReader("reads", def, testColumns(), blobmap, source, nil)
	r.SetWindow(context.Background(), 0, 1)

	c, err := r.Get(0, "QUAL")
	require.NoError(t, err)
	require.True(t, c.IsNull())
}

func TestWriter_FinishSkipsEmptyResidual(t *testing.T) {
	sink := newMemSink()
	var blobmap rowrange.BlobMap

	def := testGroupDef(32)
	w := NewWriter("reads", def, testColumns(), sink)

	require.NoError(t, w.WriteCell("READ", cell.Str("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"), 40))
	require.NoError(t, w.WriteCell("QUAL", cell.Str("!"), 1))
	require.NoError(t, w.CloseRow(&blobmap)) // crosses cutoff, flushes immediately

	blobsBeforeFinish := len(sink.blobs)
	require.NoError(t, w.Finish(&blobmap)) // nothing accumulated since the flush
	require.Equal(t, blobsBeforeFinish, len(sink.blobs))
}

func TestReader_SetWindow_ConfinementAndEviction(t *testing.T) {
	sink := newMemSink()
	var blobmap rowrange.BlobMap

	def := testGroupDef(4) // force one row per blob
	w := NewWriter("reads", def, testColumns(), sink)

	for i := 0; i < 10; i++ {
		require.NoError(t, w.WriteCell("READ", cell.Str("X"), 10))
		require.NoError(t, w.WriteCell("QUAL", cell.Str("Y"), 10))
		require.NoError(t, w.CloseRow(&blobmap))
	}
	require.NoError(t, w.Finish(&blobmap))
	require.Equal(t, 10, len(blobmap))

	source := newMemSource(sink.blobs)
	r := NewReader("reads", def, testColumns(), blobmap, source, nil)

	r.SetWindow(context.Background(), 0, 3)
	for i := 0; i < 3; i++ {
		require.True(t, r.IsResident(i))
	}
	for i := 3; i < 10; i++ {
		require.False(t, r.IsResident(i))
	}

	r.SetWindow(context.Background(), 7, 3)
	for i := 0; i < 7; i++ {
		require.False(t, r.IsResident(i))
	}
	for i := 7; i < 10; i++ {
		require.True(t, r.IsResident(i))
	}
}

func TestReader_SetWindow_Idempotent(t *testing.T) {
	sink := newMemSink()
	var blobmap rowrange.BlobMap

	def := testGroupDef(4)
	w := NewWriter("reads", def, testColumns(), sink)
	for i := 0; i < 5; i++ {
		require.NoError(t, w.WriteCell("READ", cell.Str("X"), 10))
		require.NoError(t, w.WriteCell("QUAL", cell.Str("Y"), 10))
		require.NoError(t, w.CloseRow(&blobmap))
	}
	require.NoError(t, w.Finish(&blobmap))

	source := newMemSource(sink.blobs)
	r := NewReader("reads", def, testColumns(), blobmap, source, nil)

	r.SetWindow(context.Background(), 0, 3)
	fetchesAfterFirst := 0
	for _, n := range source.fetches {
		fetchesAfterFirst += n
	}
	require.Equal(t, 3, fetchesAfterFirst)

	r.SetWindow(context.Background(), 0, 3)
	fetchesAfterSecond := 0
	for _, n := range source.fetches {
		fetchesAfterSecond += n
	}
	require.Equal(t, fetchesAfterFirst, fetchesAfterSecond)
}

func TestReader_Get_NotResident(t *testing.T) {
	sink := newMemSink()
	var blobmap rowrange.BlobMap

	def := testGroupDef(1 << 20)
	w := NewWriter("reads", def, testColumns(), sink)
	require.NoError(t, w.WriteCell("READ", cell.Str("A"), 1))
	require.NoError(t, w.WriteCell("QUAL", cell.Str("B"), 1))
	require.NoError(t, w.CloseRow(&blobmap))
	require.NoError(t, w.Finish(&blobmap))

	source := newMemSource(sink.blobs)
	r := NewReader("reads", def, testColumns(), blobmap, source, zap.NewNop())

	_, err := r.Get(0, "READ")
	require.ErrorIs(t, err, errs.ErrNotResident)
}

func TestReader_Get_OutOfRange(t *testing.T) {
	sink := newMemSink()
	var blobmap rowrange.BlobMap

	def := testGroupDef(1 << 20)
	w := NewWriter("reads", def, testColumns(), sink)
	require.NoError(t, w.WriteCell("READ", cell.Str("A"), 1))
	require.NoError(t, w.WriteCell("QUAL", cell.Str("B"), 1))
	require.NoError(t, w.CloseRow(&blobmap))
	require.NoError(t, w.Finish(&blobmap))

	source := newMemSource(sink.blobs)
	r := NewReader("reads", def, testColumns(), blobmap, source, nil)
	r.SetWindow(context.Background(), 0, 1)

	_, err := r.Get(5, "READ")
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestReader_FetchFailure_NonFatal(t *testing.T) {
	sink := newMemSink()
	var blobmap rowrange.BlobMap

	def := testGroupDef(1 << 20)
	w := NewWriter("reads", def, testColumns(), sink)
	require.NoError(t, w.WriteCell("READ", cell.Str("A"), 1))
	require.NoError(t, w.WriteCell("QUAL", cell.Str("B"), 1))
	require.NoError(t, w.CloseRow(&blobmap))
	require.NoError(t, w.Finish(&blobmap))

	source := newMemSource(sink.blobs)
	source.failOnNr[0] = true
	r := NewReader("reads", def, testColumns(), blobmap, source, nil)
	r.SetWindow(context.Background(), 0, 1)

	require.False(t, r.IsResident(0))
	_, err := r.Get(0, "READ")
	require.ErrorIs(t, err, errs.ErrNotResident)
}
