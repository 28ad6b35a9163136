package db

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/readtable/readtable/cell"
	"github.com/readtable/readtable/format"
	"github.com/readtable/readtable/schema"
)

func oneGroupSchema(t *testing.T) *schema.TableSchema {
	t.Helper()

	columns := map[schema.ColumnName]schema.ColumnDef{
		"READ": {Comp: format.CompZstd, Level: 3, Group: "reads"},
	}
	groups := map[schema.GroupName]schema.GroupDef{
		"reads": {Comp: format.CompZstd, Level: 3, Cutoff: 1 << 16, Cols: []schema.ColumnName{"READ"}},
	}

	s, err := schema.NewTableSchema(columns, groups)
	require.NoError(t, err)

	return s
}

func writeSampleTable(t *testing.T, w *Writer, name string) {
	t.Helper()

	tw, err := w.MakeTableWriter(name, oneGroupSchema(t))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, tw.WriteCell("READ", cell.Str("ACGT"), 4))
		require.NoError(t, tw.CloseRow())
	}
	require.NoError(t, tw.Finish())
}

func TestDB_Writer_WipesExisting(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)

	stalePath := filepath.Join(root, "tbl", "stale.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(stalePath), 0o755))
	require.NoError(t, os.WriteFile(stalePath, []byte("old"), 0o644))

	writeSampleTable(t, w, "tbl")

	_, err := os.Stat(stalePath)
	require.True(t, os.IsNotExist(err))
}

func TestDB_FilesystemRoundTrip(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)
	writeSampleTable(t, w, "tbl")

	r := NewReader(root, AccessFilesystem, nil)
	tr, err := r.MakeTableReader(context.Background(), "tbl")
	require.NoError(t, err)
	require.Equal(t, 5, tr.TotalRows())

	tr.SetWindow(context.Background(), 0, 5)
	c, err := tr.Get(0, "READ")
	require.NoError(t, err)
	s, ok := c.StrValue()
	require.True(t, ok)
	require.Equal(t, "ACGT", s)
}

func TestDB_HTTPRoundTrip_MatchesFilesystem(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)
	writeSampleTable(t, w, "tbl")

	srv := httptest.NewServer(http.FileServer(http.Dir(root)))
	defer srv.Close()

	fsReader := NewReader(root, AccessFilesystem, nil)
	fsTable, err := fsReader.MakeTableReader(context.Background(), "tbl")
	require.NoError(t, err)
	fsTable.SetWindow(context.Background(), 0, 5)

	httpReader := NewReader(srv.URL, AccessHTTP, nil)
	httpTable, err := httpReader.MakeTableReader(context.Background(), "tbl")
	require.NoError(t, err)
	httpTable.SetWindow(context.Background(), 0, 5)

	for i := 0; i < 5; i++ {
		fsCell, err := fsTable.Get(i, "READ")
		require.NoError(t, err)
		httpCell, err := httpTable.Get(i, "READ")
		require.NoError(t, err)
		require.Equal(t, fsCell, httpCell)
	}
}
