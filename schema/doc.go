// Package schema models a table's column/group layout: which codec and
// level compress each column, which columns share a blob sequence, and the
// per-group byte cutoff that triggers a flush.
//
// A TableSchema is built once by the writer's caller and never mutated
// afterward; NewTableSchema validates the cross-references between columns
// and groups at construction time so a malformed schema never reaches the
// write or read path.
package schema
