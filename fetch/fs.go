package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/readtable/readtable/errs"
)

// FSFetcher reads a table's meta and blob files from a local directory.
type FSFetcher struct {
	root string
}

// NewFSFetcher returns a fetcher rooted at a table directory, i.e. the
// directory containing "meta" and "{group}.{blob_nr}" files.
func NewFSFetcher(root string) *FSFetcher {
	return &FSFetcher{root: root}
}

// FetchMeta reads {root}/meta.
func (f *FSFetcher) FetchMeta(_ context.Context) ([]byte, error) {
	return f.read("meta")
}

// FetchBlob reads {root}/{group}.{blobNr}.
func (f *FSFetcher) FetchBlob(_ context.Context, group string, blobNr int) ([]byte, error) {
	return f.read(fmt.Sprintf("%s.%d", group, blobNr))
}

func (f *FSFetcher) read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(f.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("fetch: %s: %w", name, errs.ErrFetchNotFound)
		}

		return nil, fmt.Errorf("fetch: %s: %w", name, err)
	}

	return data, nil
}
