// Package format defines the wire-level enumerations shared by the
// compress, cell, schema, group, and table packages.
//
// These types are part of the on-disk/on-wire contract: their numeric
// values must never change once a blob store has been written, since a
// reader decodes them directly from persisted bytes.
package format

// CompKind identifies a compression algorithm used for one layer (column or
// group) of the blob pipeline.
type CompKind uint8

const (
	// CompNone applies no compression; Compress/Decompress are the identity.
	CompNone CompKind = 0x1
	// CompZlib compresses with DEFLATE wrapped in a zlib stream.
	CompZlib CompKind = 0x2
	// CompGzip compresses with DEFLATE wrapped in a gzip stream.
	CompGzip CompKind = 0x3
	// CompZstd compresses with Zstandard.
	CompZstd CompKind = 0x4
	// CompBz2 compresses with bzip2.
	CompBz2 CompKind = 0x5
)

// String returns the human-readable name of the compression kind.
func (c CompKind) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZlib:
		return "zlib"
	case CompGzip:
		return "gzip"
	case CompZstd:
		return "zstd"
	case CompBz2:
		return "bz2"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the fixed, known compression kinds.
func (c CompKind) Valid() bool {
	switch c {
	case CompNone, CompZlib, CompGzip, CompZstd, CompBz2:
		return true
	default:
		return false
	}
}

// CellKind is the wire tag discriminating the three shapes a Cell can take.
type CellKind uint8

const (
	// CellNull marks a cell with no value (the row did not write this column).
	CellNull CellKind = 0x0
	// CellStr marks a cell whose value is a string.
	CellStr CellKind = 0x1
	// CellIntList marks a cell whose value is a list of signed 64-bit integers.
	CellIntList CellKind = 0x2
)

// String returns the human-readable name of the cell kind.
func (k CellKind) String() string {
	switch k {
	case CellNull:
		return "null"
	case CellStr:
		return "str"
	case CellIntList:
		return "int_list"
	default:
		return "unknown"
	}
}
