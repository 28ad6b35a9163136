package cell

import (
	"encoding/binary"
	"fmt"

	"github.com/readtable/readtable/errs"
	"github.com/readtable/readtable/internal/pool"
)

// Column is the ordered list of cells written for one column within a single
// blob. Its length equals the blob's row count once the blob is closed.
type Column []Cell

// Marshal serializes the column: a varint cell count followed by each
// cell's wire form, in order. This is the payload handed to the compress
// package before the group envelope is built.
//
// Assembly happens in a pooled scratch buffer so repeated Marshal calls
// across a blob's columns don't each pay for their own growth curve; the
// returned slice is a fresh copy the caller owns.
func (col Column) Marshal() []byte {
	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)

	buf.B = binary.AppendUvarint(buf.B, uint64(len(col)))
	for _, c := range col {
		buf.B = c.marshalAppend(buf.B)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

// UnmarshalColumn decodes a column previously produced by Marshal.
func UnmarshalColumn(data []byte) (Column, error) {
	count, offset, err := readUvarint(data, 0)
	if err != nil {
		return nil, fmt.Errorf("column: cell count: %w", err)
	}

	col := make(Column, count)
	for i := range col {
		c, next, err := unmarshalCell(data, offset)
		if err != nil {
			return nil, fmt.Errorf("column: cell %d: %w", i, err)
		}
		col[i] = c
		offset = next
	}

	if offset != len(data) {
		return nil, fmt.Errorf("column: %w: %d trailing bytes", errs.ErrBadCell, len(data)-offset)
	}

	return col, nil
}
