package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/readtable/readtable/errs"
)

// HTTPFetcher reads a table's meta and blob files over HTTP or HTTPS,
// issuing one GET per blob on a persistent, reused connection (scheme is
// whatever the base URL specifies; no range requests are made).
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFetcher returns a fetcher rooted at baseURL, which is normalized
// to end with "/" so relative paths ("meta", "{group}.{blob_nr}") append
// cleanly. client defaults to http.DefaultClient's transport settings via a
// fresh *http.Client if nil, reused across every request so the underlying
// transport pools and reuses the TCP connection.
func NewHTTPFetcher(baseURL string, client *http.Client) *HTTPFetcher {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if client == nil {
		client = &http.Client{}
	}

	return &HTTPFetcher{baseURL: baseURL, client: client}
}

// FetchMeta issues GET {baseURL}meta.
func (f *HTTPFetcher) FetchMeta(ctx context.Context) ([]byte, error) {
	return f.get(ctx, "meta")
}

// FetchBlob issues GET {baseURL}{group}.{blobNr}.
func (f *HTTPFetcher) FetchBlob(ctx context.Context, group string, blobNr int) ([]byte, error) {
	return f.get(ctx, fmt.Sprintf("%s.%d", group, blobNr))
}

// get performs one GET, transparently retrying once on any failure other
// than a 404 (a transport error or a non-200 status alike), matching the
// source's one-reconnect-per-request allowance, before surfacing a
// FetchError. A 404 is not retried: it is a definitive answer from the
// server, not a transient failure a reconnect could fix.
func (f *HTTPFetcher) get(ctx context.Context, name string) ([]byte, error) {
	body, err := f.doGet(ctx, name)
	if err != nil && !errors.Is(err, errs.ErrFetchNotFound) {
		body, err = f.doGet(ctx, name)
	}
	if err != nil {
		return nil, classifyErr(name, err)
	}

	return body, nil
}

func (f *HTTPFetcher) doGet(ctx context.Context, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+name, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errs.ErrFetchNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func classifyErr(name string, err error) error {
	if errors.Is(err, errs.ErrFetchNotFound) {
		return fmt.Errorf("fetch: %s: %w", name, errs.ErrFetchNotFound)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("fetch: %s: %w", name, errs.ErrFetchTimeout)
	}

	return fmt.Errorf("fetch: %s: %w: %w", name, errs.ErrFetchConnectionLost, err)
}
