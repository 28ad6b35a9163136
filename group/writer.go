package group

import (
	"fmt"

	"github.com/readtable/readtable/cell"
	"github.com/readtable/readtable/compress"
	"github.com/readtable/readtable/errs"
	"github.com/readtable/readtable/rowrange"
	"github.com/readtable/readtable/schema"
)

// Sink receives the finished blobs of one group, keyed by their zero-based,
// contiguous file number.
type Sink interface {
	WriteBlob(fileNr int, data []byte) error
}

// Writer accumulates cells for one column group and flushes compressed
// blobs to a Sink once the group's byte cutoff is crossed.
//
// A Writer is not safe for concurrent use; the table writer that owns it
// calls WriteCell/CloseRow/Finish in strict sequence.
type Writer struct {
	name    schema.GroupName
	def     schema.GroupDef
	columns map[schema.ColumnName]schema.ColumnDef
	sink    Sink

	values       map[schema.ColumnName][]cell.Cell
	rowCount     int
	bytesWritten int
	fileNr       int
}

// NewWriter constructs a Writer for one group. columns is the table
// schema's full column map, used to look up each column's own codec/level.
func NewWriter(name schema.GroupName, def schema.GroupDef, columns map[schema.ColumnName]schema.ColumnDef, sink Sink) *Writer {
	values := make(map[schema.ColumnName][]cell.Cell, len(def.Cols))
	for _, c := range def.Cols {
		values[c] = nil
	}

	return &Writer{
		name:    name,
		def:     def,
		columns: columns,
		sink:    sink,
		values:  values,
	}
}

// RowCount returns the number of rows accumulated in the current (not yet
// flushed) blob.
func (w *Writer) RowCount() int { return w.rowCount }

// WriteCell appends value for col in the row currently being assembled.
// size is the caller's estimate of the value's pre-compression byte cost,
// accumulated toward the group's flush cutoff.
func (w *Writer) WriteCell(col schema.ColumnName, value cell.Cell, size int) error {
	if _, ok := w.values[col]; !ok {
		return fmt.Errorf("group %q: %w: %q", w.name, errs.ErrUnknownColumn, col)
	}

	w.values[col] = append(w.values[col], value)
	w.bytesWritten += size

	return nil
}

// CloseRow finalizes the current row: every column not written this row is
// null-padded to keep all columns the same length, the row counter
// advances, and a flush is triggered if the byte cutoff was crossed.
func (w *Writer) CloseRow(blobmap *rowrange.BlobMap) error {
	w.rowCount++

	for _, c := range w.def.Cols {
		if len(w.values[c]) < w.rowCount {
			w.values[c] = append(w.values[c], cell.Null())
		}
	}

	if w.bytesWritten > w.def.Cutoff {
		return w.FlushBlob(blobmap)
	}

	return nil
}

// FlushBlob serializes and compresses the current blob, writes it to the
// sink, appends its row count to blobmap, then resets accumulation state for
// the next blob. It writes a blob even when no rows have accumulated; Finish
// is the call that skips an empty residual blob.
func (w *Writer) FlushBlob(blobmap *rowrange.BlobMap) error {
	entries := make([]cell.Entry, 0, len(w.def.Cols))

	for _, c := range w.def.Cols {
		colDef, ok := w.columns[c]
		if !ok {
			return fmt.Errorf("group %q: %w: column %q has no definition", w.name, errs.ErrSchemaInvalid, c)
		}

		codec, err := compress.GetCodec(colDef.Comp)
		if err != nil {
			return fmt.Errorf("group %q: column %q: %w", w.name, c, err)
		}

		serialized := cell.Column(w.values[c]).Marshal()

		compressed, err := codec.Compress(serialized, colDef.Level)
		if err != nil {
			return fmt.Errorf("group %q: column %q: compress: %w", w.name, c, err)
		}

		entries = append(entries, cell.Entry{Name: string(c), Payload: compressed})
	}

	envelope := cell.Envelope{Entries: entries}.Marshal()

	groupCodec, err := compress.GetCodec(w.def.Comp)
	if err != nil {
		return fmt.Errorf("group %q: %w", w.name, err)
	}

	blob, err := groupCodec.Compress(envelope, w.def.Level)
	if err != nil {
		return fmt.Errorf("group %q: envelope compress: %w", w.name, err)
	}

	if err := w.sink.WriteBlob(w.fileNr, blob); err != nil {
		return fmt.Errorf("group %q: write blob %d: %w", w.name, w.fileNr, err)
	}

	blobmap.Append(w.rowCount)

	w.fileNr++
	w.rowCount = 0
	w.bytesWritten = 0
	for _, c := range w.def.Cols {
		w.values[c] = nil
	}

	return nil
}

// Finish flushes the group's residual blob, but only if it holds at least
// one row; an empty trailing blob is never written.
func (w *Writer) Finish(blobmap *rowrange.BlobMap) error {
	if w.rowCount == 0 {
		return nil
	}

	return w.FlushBlob(blobmap)
}
