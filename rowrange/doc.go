// Package rowrange implements the per-group row-range map (BlobMap): the
// ordered (start_row, count) sequence that locates every blob of a column
// group within the table's global row index, plus the lookups a group
// reader needs to resolve a row to a blob and a window to the blobs it
// overlaps.
package rowrange
