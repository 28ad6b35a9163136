package group

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/readtable/readtable/cell"
	"github.com/readtable/readtable/compress"
	"github.com/readtable/readtable/errs"
	"github.com/readtable/readtable/rowrange"
	"github.com/readtable/readtable/schema"
)

// Source fetches one group's raw blob bytes by file number.
type Source interface {
	FetchBlob(ctx context.Context, fileNr int) ([]byte, error)
}

type loadedBlob struct {
	columns  map[schema.ColumnName][]cell.Cell
	startRow int
	count    int
}

// Reader serves windowed, random-access reads over one column group's
// blobs. It keeps resident blobs in an in-memory cache keyed by blob
// number; SetWindow drives what is resident.
//
// A Reader is not safe for concurrent use on its own; the table reader
// confines each group reader to at most one in-flight SetWindow call.
type Reader struct {
	name    schema.GroupName
	def     schema.GroupDef
	columns map[schema.ColumnName]schema.ColumnDef
	blobmap rowrange.BlobMap
	source  Source
	logger  *zap.Logger

	loaded map[int]loadedBlob
}

// NewReader constructs a Reader for one group. logger defaults to a no-op
// logger if nil; a per-blob fetch/decode failure is logged at Warn and
// otherwise swallowed (the slot simply stays unresident).
func NewReader(name schema.GroupName, def schema.GroupDef, columns map[schema.ColumnName]schema.ColumnDef, blobmap rowrange.BlobMap, source Source, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reader{
		name:    name,
		def:     def,
		columns: columns,
		blobmap: blobmap,
		source:  source,
		logger:  logger,
		loaded:  make(map[int]loadedBlob),
	}
}

// TotalRows returns the group's row count per its blob map.
func (r *Reader) TotalRows() int { return r.blobmap.TotalRows() }

// SetWindow makes resident exactly the blobs overlapping [start, start+count),
// evicting everything else. A blob that fails to fetch or decode is logged
// and simply left out of the resident set; it does not abort the others.
func (r *Reader) SetWindow(ctx context.Context, start, count int) {
	want := make(map[int]struct{})
	for _, i := range r.blobmap.Overlapping(start, count) {
		want[i] = struct{}{}
	}

	for i := range r.loaded {
		if _, ok := want[i]; !ok {
			delete(r.loaded, i)
		}
	}

	for i := range want {
		if _, ok := r.loaded[i]; ok {
			continue
		}

		blob, err := r.loadBlob(ctx, i)
		if err != nil {
			r.logger.Warn("group blob load failed, leaving slot unresident",
				zap.String("group", string(r.name)), zap.Int("blob_nr", i), zap.Error(err))

			continue
		}

		r.loaded[i] = blob
	}
}

func (r *Reader) loadBlob(ctx context.Context, i int) (loadedBlob, error) {
	entry := r.blobmap[i]

	raw, err := r.source.FetchBlob(ctx, i)
	if err != nil {
		return loadedBlob{}, fmt.Errorf("fetch blob %d: %w", i, err)
	}

	groupCodec, err := compress.GetCodec(r.def.Comp)
	if err != nil {
		return loadedBlob{}, err
	}

	envelopeBytes, err := groupCodec.Decompress(raw)
	if err != nil {
		return loadedBlob{}, fmt.Errorf("%w: %w", errs.ErrDecompressFailed, err)
	}

	envelope, err := cell.UnmarshalEnvelope(envelopeBytes)
	if err != nil {
		return loadedBlob{}, err
	}

	columns := make(map[schema.ColumnName][]cell.Cell, len(envelope.Entries))
	for _, e := range envelope.Entries {
		colName := schema.ColumnName(e.Name)

		colDef, ok := r.columns[colName]
		if !ok {
			return loadedBlob{}, fmt.Errorf("%w: envelope names unknown column %q", errs.ErrBadEnvelope, e.Name)
		}

		codec, err := compress.GetCodec(colDef.Comp)
		if err != nil {
			return loadedBlob{}, err
		}

		serialized, err := codec.Decompress(e.Payload)
		if err != nil {
			return loadedBlob{}, fmt.Errorf("column %q: %w: %w", e.Name, errs.ErrDecompressFailed, err)
		}

		col, err := cell.UnmarshalColumn(serialized)
		if err != nil {
			return loadedBlob{}, fmt.Errorf("column %q: %w", e.Name, err)
		}

		columns[colName] = col
	}

	return loadedBlob{columns: columns, startRow: entry.StartRow, count: entry.Count}, nil
}

// Get returns the cell at (row, col). It returns errs.ErrNotResident if
// row's blob has not been loaded by a prior SetWindow, and errs.ErrOutOfRange
// if row is outside the group's total row count.
func (r *Reader) Get(row int, col schema.ColumnName) (cell.Cell, error) {
	i, ok := r.blobmap.IndexForRow(row)
	if !ok {
		return cell.Cell{}, fmt.Errorf("group %q: row %d: %w", r.name, row, errs.ErrOutOfRange)
	}

	blob, ok := r.loaded[i]
	if !ok {
		return cell.Cell{}, fmt.Errorf("group %q: blob %d: %w", r.name, i, errs.ErrNotResident)
	}

	values, ok := blob.columns[col]
	if !ok {
		return cell.Cell{}, fmt.Errorf("group %q: column %q: %w", r.name, col, errs.ErrOutOfRange)
	}

	return values[row-blob.startRow], nil
}

// IsResident reports whether row's blob is currently loaded.
func (r *Reader) IsResident(row int) bool {
	i, ok := r.blobmap.IndexForRow(row)
	if !ok {
		return false
	}
	_, ok = r.loaded[i]

	return ok
}
