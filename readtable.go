// Package readtable is a columnar blob store for sequencing-read tables: it
// converts row-oriented tabular data into compressed, column-grouped binary
// blobs that can be read back from a local directory or over HTTP, with
// random row access, windowed prefetch, and per-group parallel loading.
//
// # Basic usage
//
// Writing a table:
//
//	schema, _ := readtable.NewTableSchema(
//	    map[schema.ColumnName]schema.ColumnDef{
//	        "READ": {Comp: format.CompZstd, Level: 3, Group: "reads"},
//	        "QUAL": {Comp: format.CompZstd, Level: 3, Group: "reads"},
//	    },
//	    map[schema.GroupName]schema.GroupDef{
//	        "reads": {Comp: format.CompZstd, Level: 3, Cutoff: 1 << 20, Cols: []schema.ColumnName{"READ", "QUAL"}},
//	    },
//	)
//
//	w := readtable.NewDatabaseWriter("/data/run123")
//	tw, _ := w.MakeTableWriter("SRR000001", schema)
//	tw.WriteCell("READ", cell.Str("ACGT"), 4)
//	tw.WriteCell("QUAL", cell.Str("!!!!"), 4)
//	tw.CloseRow()
//	tw.Finish()
//
// Reading it back, locally or over HTTP:
//
//	r := readtable.NewFilesystemReader("/data/run123")
//	tr, _ := r.MakeTableReader(ctx, "SRR000001")
//	tr.SetWindow(ctx, 0, 100)
//	cell, _ := tr.Get(0, "READ")
//
//	r = readtable.NewHTTPReader("https://example.org/run123", nil)
//	tr, _ = r.MakeTableReader(ctx, "SRR000001")
//
// # Package structure
//
// This package is a thin façade over db, table, group, schema, and fetch.
// For fine-grained control (custom fetchers, per-table reader options,
// direct group access) use those packages directly.
package readtable

import (
	"net/http"

	"github.com/readtable/readtable/db"
	"github.com/readtable/readtable/schema"
)

// NewTableSchema validates and builds a TableSchema; see schema.NewTableSchema.
func NewTableSchema(columns map[schema.ColumnName]schema.ColumnDef, groups map[schema.GroupName]schema.GroupDef) (*schema.TableSchema, error) {
	return schema.NewTableSchema(columns, groups)
}

// NewDatabaseWriter returns a db.Writer rooted at a local directory.
func NewDatabaseWriter(root string) *db.Writer {
	return db.NewWriter(root)
}

// NewFilesystemReader returns a db.Reader that reads tables from a local
// directory tree.
func NewFilesystemReader(root string) *db.Reader {
	return db.NewReader(root, db.AccessFilesystem, nil)
}

// NewHTTPReader returns a db.Reader that reads tables from an HTTP(S) base
// URL. httpClient may be nil to use a default client.
func NewHTTPReader(baseURL string, httpClient *http.Client) *db.Reader {
	return db.NewReader(baseURL, db.AccessHTTP, httpClient)
}
