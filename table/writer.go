package table

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/readtable/readtable/cell"
	"github.com/readtable/readtable/errs"
	"github.com/readtable/readtable/group"
	"github.com/readtable/readtable/rowrange"
	"github.com/readtable/readtable/schema"
)

// metaFileName is the fixed name of a table's persisted metadata record.
const metaFileName = "meta"

// fsSink writes one group's blobs as files named "{group}.{file_nr}" under
// a table's root directory.
type fsSink struct {
	root  string
	group schema.GroupName
}

func (s *fsSink) WriteBlob(fileNr int, data []byte) error {
	path := filepath.Join(s.root, fmt.Sprintf("%s.%d", s.group, fileNr))

	return os.WriteFile(path, data, 0o644)
}

// Writer owns one table's schema and the set of group writers it routes
// cells to. It is not safe for concurrent use: the producer calls
// WriteCell/CloseRow in a strict sequence, matching the group writer's own
// single-threaded contract.
type Writer struct {
	accession string
	schema    *schema.TableSchema
	root      string

	groups   map[schema.GroupName]*group.Writer
	blobmaps map[schema.GroupName]*rowrange.BlobMap
	rowCount int
}

// NewWriter returns a Writer rooted at {root}/ with a group writer per
// schema group, each targeting its own blob files under root. It creates no
// directory: root must already exist (db.Writer creates and wipes it).
func NewWriter(root string, accession string, sch *schema.TableSchema) *Writer {
	groups := make(map[schema.GroupName]*group.Writer, len(sch.Groups))
	blobmaps := make(map[schema.GroupName]*rowrange.BlobMap, len(sch.Groups))

	for name, def := range sch.Groups {
		sink := &fsSink{root: root, group: name}
		groups[name] = group.NewWriter(name, def, sch.Columns, sink)
		blobmaps[name] = &rowrange.BlobMap{}
	}

	return &Writer{
		accession: accession,
		schema:    sch,
		root:      root,
		groups:    groups,
		blobmaps:  blobmaps,
	}
}

// WriteCell routes value to the group owning col.
func (w *Writer) WriteCell(col schema.ColumnName, value cell.Cell, size int) error {
	groupName, ok := w.schema.GroupOf(col)
	if !ok {
		return fmt.Errorf("table: %w: %q", errs.ErrUnknownColumn, col)
	}

	return w.groups[groupName].WriteCell(col, value, size)
}

// CloseRow closes the current row on every group writer, keeping their row
// counters aligned even for groups whose columns this row never touched.
func (w *Writer) CloseRow() error {
	for name, gw := range w.groups {
		if err := gw.CloseRow(w.blobmaps[name]); err != nil {
			return fmt.Errorf("table: group %q: %w", name, err)
		}
	}
	w.rowCount++

	return nil
}

// Finish force-flushes every group's residual blob (skipping any that are
// already empty) and persists the table's metadata record.
func (w *Writer) Finish() error {
	for name, gw := range w.groups {
		if err := gw.Finish(w.blobmaps[name]); err != nil {
			return fmt.Errorf("table: group %q: finish: %w", name, err)
		}
	}

	blobMaps := make(map[schema.GroupName]rowrange.BlobMap, len(w.blobmaps))
	for name, bm := range w.blobmaps {
		blobMaps[name] = *bm
	}

	meta := &Meta{Accession: w.accession, Schema: w.schema, BlobMaps: blobMaps}

	path := filepath.Join(w.root, metaFileName)
	if err := os.WriteFile(path, meta.Marshal(), 0o644); err != nil {
		return fmt.Errorf("table: write meta: %w", err)
	}

	return nil
}
