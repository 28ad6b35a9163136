package table

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/readtable/readtable/cell"
	"github.com/readtable/readtable/errs"
	"github.com/readtable/readtable/group"
	"github.com/readtable/readtable/internal/options"
	"github.com/readtable/readtable/internal/parallel"
	"github.com/readtable/readtable/schema"
)

// Fetcher is the narrow contract a table reader needs from an address: a
// table's metadata and, per group, its numbered blobs.
type Fetcher interface {
	FetchMeta(ctx context.Context) ([]byte, error)
	FetchBlob(ctx context.Context, groupName string, blobNr int) ([]byte, error)
}

type readerConfig struct {
	wanted   map[schema.ColumnName]struct{}
	parallel bool
	logger   *zap.Logger
}

// ReaderOption configures a Reader at construction time.
type ReaderOption = options.Option[*readerConfig]

// WithWanted restricts the reader to the groups covering these columns. An
// empty or absent set is treated as "all groups", matching the source's
// lenient nil-vs-empty handling.
func WithWanted(cols []schema.ColumnName) ReaderOption {
	return options.NoError(func(c *readerConfig) {
		if len(cols) == 0 {
			return
		}
		c.wanted = make(map[schema.ColumnName]struct{}, len(cols))
		for _, col := range cols {
			c.wanted[col] = struct{}{}
		}
	})
}

// WithParallelLoading enables concurrent per-group loading in SetWindow,
// bounded to one task per active group.
func WithParallelLoading(enabled bool) ReaderOption {
	return options.NoError(func(c *readerConfig) { c.parallel = enabled })
}

// WithLogger sets the logger handed to every group reader.
func WithLogger(logger *zap.Logger) ReaderOption {
	return options.NoError(func(c *readerConfig) { c.logger = logger })
}

type groupSource struct {
	fetcher Fetcher
	group   schema.GroupName
}

func (s *groupSource) FetchBlob(ctx context.Context, fileNr int) ([]byte, error) {
	return s.fetcher.FetchBlob(ctx, string(s.group), fileNr)
}

// Reader serves windowed, random-access reads over one table, dispatching
// to one group.Reader per loaded column group.
type Reader struct {
	meta      *Meta
	groups    map[schema.GroupName]*group.Reader
	totalRows int
	parallel  bool
}

// NewReader fetches and validates a table's metadata, then constructs a
// group reader for every group the wanted columns touch (all groups, if
// wanted is empty or absent).
func NewReader(ctx context.Context, fetcher Fetcher, opts ...ReaderOption) (*Reader, error) {
	cfg := &readerConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	rawMeta, err := fetcher.FetchMeta(ctx)
	if err != nil {
		return nil, fmt.Errorf("table: fetch meta: %w", err)
	}

	meta, err := UnmarshalMeta(rawMeta)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}

	neededGroups := selectGroups(meta.Schema, cfg.wanted)

	groups := make(map[schema.GroupName]*group.Reader, len(neededGroups))
	for _, name := range neededGroups {
		def := meta.Schema.Groups[name]
		source := &groupSource{fetcher: fetcher, group: name}
		groups[name] = group.NewReader(name, def, meta.Schema.Columns, meta.BlobMaps[name], source, cfg.logger)
	}

	totalRows := -1
	for name, gr := range groups {
		rows := gr.TotalRows()
		if totalRows == -1 {
			totalRows = rows
			continue
		}
		if rows != totalRows {
			return nil, fmt.Errorf("table %q: group %q: %w", meta.Accession, name, errs.ErrInconsistentRowCount)
		}
	}
	if totalRows == -1 {
		totalRows = 0
	}

	return &Reader{meta: meta, groups: groups, totalRows: totalRows, parallel: cfg.parallel}, nil
}

func selectGroups(sch *schema.TableSchema, wanted map[schema.ColumnName]struct{}) []schema.GroupName {
	if len(wanted) == 0 {
		return sch.GroupNames()
	}

	seen := make(map[schema.GroupName]struct{})
	var names []schema.GroupName
	for col := range wanted {
		groupName, ok := sch.GroupOf(col)
		if !ok {
			continue
		}
		if _, dup := seen[groupName]; dup {
			continue
		}
		seen[groupName] = struct{}{}
		names = append(names, groupName)
	}

	return names
}

// Name returns the table's accession.
func (r *Reader) Name() string { return r.meta.Accession }

// TotalRows returns the table's row count, verified identical across every
// loaded group at construction time.
func (r *Reader) TotalRows() int { return r.totalRows }

// SetWindow makes resident the rows in [start, start+count) across every
// loaded group, sequentially or concurrently per the reader's configured
// mode, and returns the number of rows actually covered (clamped to the
// table's total row count).
func (r *Reader) SetWindow(ctx context.Context, start, count int) int {
	covered := count
	if start+covered > r.totalRows {
		covered = r.totalRows - start
	}
	if covered < 0 {
		covered = 0
	}

	if r.parallel {
		tasks := make([]func() error, 0, len(r.groups))
		for _, gr := range r.groups {
			gr := gr
			tasks = append(tasks, func() error {
				gr.SetWindow(ctx, start, count)

				return nil
			})
		}
		parallel.Run(len(r.groups), tasks)
	} else {
		for _, gr := range r.groups {
			gr.SetWindow(ctx, start, count)
		}
	}

	return covered
}

// Get resolves col to its owning group and returns the cell at (row, col).
// It returns errs.ErrOutOfRange if row is out of range, col is not in the
// schema, or col's group was not loaded under the reader's wanted filter. A row whose blob is not yet
// resident (no prior SetWindow covered it, or its fetch/decode failed and
// was logged) is not an error at this layer: Get returns a null cell with
// a nil error instead of propagating errs.ErrNotResident.
func (r *Reader) Get(row int, col schema.ColumnName) (cell.Cell, error) {
	if row < 0 || row >= r.totalRows {
		return cell.Cell{}, fmt.Errorf("table %q: row %d: %w", r.meta.Accession, row, errs.ErrOutOfRange)
	}

	groupName, ok := r.meta.Schema.GroupOf(col)
	if !ok {
		return cell.Cell{}, fmt.Errorf("table %q: column %q: %w", r.meta.Accession, col, errs.ErrOutOfRange)
	}

	gr, ok := r.groups[groupName]
	if !ok {
		return cell.Cell{}, fmt.Errorf("table %q: column %q: %w", r.meta.Accession, col, errs.ErrOutOfRange)
	}

	c, err := gr.Get(row, col)
	if errors.Is(err, errs.ErrNotResident) {
		return cell.Null(), nil
	}

	return c, err
}
