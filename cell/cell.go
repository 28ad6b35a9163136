package cell

import (
	"encoding/binary"
	"fmt"

	"github.com/readtable/readtable/errs"
	"github.com/readtable/readtable/format"
)

// Cell is a tagged union holding one of: a string, a list of signed 64-bit
// integers, or nothing (null). For any Cell produced by the constructors
// below, exactly one holds: StrValue reports ok, IntListValue reports ok, or
// IsNull is true.
type Cell struct {
	kind format.CellKind
	str  string
	ints []int64
}

// Str creates a string-valued cell.
func Str(value string) Cell {
	return Cell{kind: format.CellStr, str: value}
}

// IntList creates an integer-list-valued cell. The slice is retained, not
// copied; callers should not mutate it afterward.
func IntList(values []int64) Cell {
	return Cell{kind: format.CellIntList, ints: values}
}

// Null creates a null cell, used to pad a column when a row did not write a
// value for it (spec: "close_row ... pad any column whose appended length is
// still below row_count with a null cell").
func Null() Cell {
	return Cell{kind: format.CellNull}
}

// Kind returns the cell's wire tag.
func (c Cell) Kind() format.CellKind { return c.kind }

// IsNull reports whether the cell carries no value.
func (c Cell) IsNull() bool { return c.kind == format.CellNull }

// StrValue returns the cell's string value and whether the cell is a string cell.
func (c Cell) StrValue() (string, bool) {
	return c.str, c.kind == format.CellStr
}

// IntListValue returns the cell's integer list and whether the cell is an
// int-list cell. The returned slice must not be mutated by the caller.
func (c Cell) IntListValue() ([]int64, bool) {
	return c.ints, c.kind == format.CellIntList
}

// Marshal returns the cell's wire form.
func (c Cell) Marshal() []byte {
	return c.marshalAppend(nil)
}

// marshalAppend appends the cell's wire form to buf and returns the result.
//
// Wire form: [tag: 1 byte] followed by, for CellStr, a varint length and
// the UTF-8 bytes; for CellIntList, a varint count and each value as a
// zigzag varint; for CellNull, nothing further.
func (c Cell) marshalAppend(buf []byte) []byte {
	buf = append(buf, byte(c.kind))

	switch c.kind {
	case format.CellStr:
		buf = binary.AppendUvarint(buf, uint64(len(c.str)))
		buf = append(buf, c.str...)
	case format.CellIntList:
		buf = binary.AppendUvarint(buf, uint64(len(c.ints)))
		for _, v := range c.ints {
			buf = binary.AppendVarint(buf, v)
		}
	case format.CellNull:
		// no payload
	}

	return buf
}

// Unmarshal decodes a single cell from data, requiring the cell to consume
// the entire slice.
func Unmarshal(data []byte) (Cell, error) {
	c, offset, err := unmarshalCell(data, 0)
	if err != nil {
		return Cell{}, err
	}
	if offset != len(data) {
		return Cell{}, fmt.Errorf("cell: %w: %d trailing bytes", errs.ErrBadCell, len(data)-offset)
	}

	return c, nil
}

// unmarshalCell reads one cell from data starting at offset, returning the
// cell and the offset just past it.
func unmarshalCell(data []byte, offset int) (Cell, int, error) {
	if offset >= len(data) {
		return Cell{}, 0, fmt.Errorf("cell: %w: missing tag byte", errs.ErrTruncated)
	}

	kind := format.CellKind(data[offset])
	offset++

	switch kind {
	case format.CellNull:
		return Null(), offset, nil
	case format.CellStr:
		n, off, err := readUvarint(data, offset)
		if err != nil {
			return Cell{}, 0, fmt.Errorf("cell: str length: %w", err)
		}
		if off+int(n) > len(data) {
			return Cell{}, 0, fmt.Errorf("cell: %w: str body", errs.ErrTruncated)
		}

		return Str(string(data[off : off+int(n)])), off + int(n), nil
	case format.CellIntList:
		n, off, err := readUvarint(data, offset)
		if err != nil {
			return Cell{}, 0, fmt.Errorf("cell: int count: %w", err)
		}

		var values []int64
		if n > 0 {
			values = make([]int64, n)
		}
		for i := range values {
			v, next, err := readVarint(data, off)
			if err != nil {
				return Cell{}, 0, fmt.Errorf("cell: int value %d: %w", i, err)
			}
			values[i] = v
			off = next
		}

		return IntList(values), off, nil
	default:
		return Cell{}, 0, fmt.Errorf("cell: %w: tag %d", errs.ErrBadCell, kind)
	}
}

func readUvarint(data []byte, offset int) (uint64, int, error) {
	v, n := binary.Uvarint(data[offset:])
	if n <= 0 {
		return 0, 0, errs.ErrTruncated
	}

	return v, offset + n, nil
}

func readVarint(data []byte, offset int) (int64, int, error) {
	v, n := binary.Varint(data[offset:])
	if n <= 0 {
		return 0, 0, errs.ErrTruncated
	}

	return v, offset + n, nil
}
