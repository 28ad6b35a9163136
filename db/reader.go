package db

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/readtable/readtable/fetch"
	"github.com/readtable/readtable/table"
)

// AccessMode selects which Fetcher backend a Reader's table readers use.
type AccessMode int

const (
	// AccessFilesystem reads tables from a local directory tree.
	AccessFilesystem AccessMode = iota
	// AccessHTTP reads tables from an HTTP(S) base URL.
	AccessHTTP
)

// Reader owns the configured address and access mode for a database; it
// otherwise holds no state of its own, matching the source's "DB reader
// otherwise holds only the configured address and modes".
type Reader struct {
	addr       string
	mode       AccessMode
	httpClient *http.Client
}

// NewReader returns a Reader pointed at addr (a directory path or a base
// URL) using the given access mode. httpClient is only consulted in
// AccessHTTP mode; pass nil to use a fresh default client.
func NewReader(addr string, mode AccessMode, httpClient *http.Client) *Reader {
	return &Reader{addr: addr, mode: mode, httpClient: httpClient}
}

// MakeTableReader constructs a table.Reader rooted at {addr}/{name} (or the
// HTTP equivalent), applying any additional table.ReaderOption.
func (r *Reader) MakeTableReader(ctx context.Context, name string, opts ...table.ReaderOption) (*table.Reader, error) {
	var fetcher table.Fetcher

	switch r.mode {
	case AccessHTTP:
		base := strings.TrimRight(r.addr, "/") + "/" + name
		fetcher = fetch.NewHTTPFetcher(base, r.httpClient)
	default:
		fetcher = fetch.NewFSFetcher(filepath.Join(r.addr, name))
	}

	return table.NewReader(ctx, fetcher, opts...)
}
