// Package errs holds the sentinel errors exposed by the blob store engine.
//
// Callers match on these with errors.Is after an operation fails; every
// wrapping call site uses fmt.Errorf("%w: ...", Err..., ...) so context
// survives alongside the sentinel.
package errs

import "errors"

var (
	// ErrSchemaInvalid is returned at schema-construction time: a column not
	// referenced by any group, a group referencing a missing column, or a
	// duplicate column/group name.
	ErrSchemaInvalid = errors.New("schema invalid")

	// ErrUnknownColumn is returned by write_cell for a column not in the schema.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrFetchNotFound is returned by a blob fetcher when the requested meta
	// or blob does not exist at the configured address.
	ErrFetchNotFound = errors.New("fetch: not found")

	// ErrFetchConnectionLost is returned by a blob fetcher when the underlying
	// connection drops before a response is fully read.
	ErrFetchConnectionLost = errors.New("fetch: connection lost")

	// ErrFetchTimeout is returned by a blob fetcher when a request exceeds its
	// configured deadline.
	ErrFetchTimeout = errors.New("fetch: timeout")

	// ErrDecompressFailed is returned when a compressed payload fails to
	// decompress (corrupt data, or algorithm/level mismatch).
	ErrDecompressFailed = errors.New("decompress failed")

	// ErrBadEnvelope is returned when a group envelope (names/encoded_columns)
	// or table meta record fails to deserialize, or fails its integrity check.
	ErrBadEnvelope = errors.New("bad envelope")

	// ErrBadCell is returned when a cell's tag is absent or unrecognized.
	ErrBadCell = errors.New("bad cell")

	// ErrTruncated is returned when a wire record ends before all of its
	// declared fields have been read.
	ErrTruncated = errors.New("truncated")

	// ErrUnknownComp is returned when a CompKind byte on the wire does not
	// match any known compression kind.
	ErrUnknownComp = errors.New("unknown compression kind")

	// ErrInconsistentRowCount is returned when a table reader's column groups
	// disagree on total row count.
	ErrInconsistentRowCount = errors.New("inconsistent row count across groups")

	// ErrOutOfRange is returned by get(row, col) when row >= total_rows or
	// col is not part of the schema (or not loaded under the current
	// "wanted" column filter).
	ErrOutOfRange = errors.New("out of range")

	// ErrNotResident is returned internally by a group reader when get(row,
	// col) is called for a row whose blob is not currently loaded; the table
	// reader translates this into a nil result rather than propagating it.
	ErrNotResident = errors.New("blob not resident")
)
