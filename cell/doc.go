// Package cell implements the structural encoder contract shared by every
// blob in the store: the tagged-union Cell value, the Column it belongs to,
// and the group envelope that bundles compressed columns into one blob.
//
// # Cell
//
// A Cell is either a string, a list of signed 64-bit integers, or null (the
// row did not write this column). The wire tag is explicit so decode never
// has to guess from shape:
//
//	cell := cell.Str("ACGT")
//	cell := cell.IntList([]int64{10, 250, 3})
//	cell := cell.Null()
//
// # Column
//
// A Column is the ordered list of Cells for one column within one blob;
// Marshal/Unmarshal round-trip it to the bytes later handed to the
// compress package.
//
// # Envelope
//
// The group envelope is the named map `column -> already-compressed
// column payload` that becomes one blob file's plaintext before the
// group's own (outer) compression layer is applied. It carries a 64-bit
// xxHash of its own bytes so a reader can detect truncation or
// corruption independent of the outer codec's own error reporting.
//
// All three wire forms are deterministic: encoding the same logical value
// twice produces byte-identical output.
package cell
