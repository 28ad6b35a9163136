package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/readtable/readtable/schema"
	"github.com/readtable/readtable/table"
)

// Writer owns a named collection of table directories under one root.
type Writer struct {
	root string
}

// NewWriter returns a Writer rooted at root. root must already exist; the
// database adds no meta file of its own, only table subdirectories.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// MakeTableWriter creates (wiping any pre-existing contents) {root}/{name}/
// and returns a table.Writer rooted there, using name as the table's
// accession.
func (w *Writer) MakeTableWriter(name string, sch *schema.TableSchema) (*table.Writer, error) {
	tableRoot := filepath.Join(w.root, name)

	if err := os.RemoveAll(tableRoot); err != nil {
		return nil, fmt.Errorf("db: wipe table %q: %w", name, err)
	}
	if err := os.MkdirAll(tableRoot, 0o755); err != nil {
		return nil, fmt.Errorf("db: create table %q: %w", name, err)
	}

	return table.NewWriter(tableRoot, name, sch), nil
}
