// Package table implements the table-level writer and reader: the layer
// that owns a schema and its set of column-group writers/readers, routes
// incoming cells to the right group, keeps every group's row counter in
// lockstep via CloseRow, and persists/loads the table's metadata record.
package table
