// Package group implements the column-group writer and reader: the unit
// that owns one set of columns sharing a blob sequence.
//
// The writer accumulates cells per column until its pre-compression byte
// cutoff is crossed, then serializes+compresses column-by-column, bundles
// the results into an envelope, compresses the envelope, and hands the blob
// to an injected sink. The reader does the inverse: it loads the blobs that
// overlap a requested row window, decompresses and deserializes them, and
// answers per-row per-column lookups against whatever is currently resident.
//
// A failed fetch or decode is not fatal to the reader: the slot stays
// unresident, the failure is logged, and a later window request may retry.
package group
