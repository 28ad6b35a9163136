// Package db implements the database-level writer and reader: a named
// collection of tables stored as one directory per table. Tables are
// independent; the database adds no cross-table invariants and persists no
// database-level metadata of its own.
package db
