package table

import (
	"encoding/binary"
	"fmt"
	"maps"
	"slices"

	"github.com/readtable/readtable/endian"
	"github.com/readtable/readtable/errs"
	"github.com/readtable/readtable/format"
	"github.com/readtable/readtable/internal/hash"
	"github.com/readtable/readtable/internal/pool"
	"github.com/readtable/readtable/rowrange"
	"github.com/readtable/readtable/schema"
)

const (
	metaMagic   = uint32(0x52544254) // "RTBT" - read-table blob table
	metaVersion = uint8(1)
)

var metaByteOrder = endian.GetLittleEndianEngine()

// Meta is the single record persisted per table: its accession, its full
// schema, and every group's row-range map. A reader decodes this before
// constructing any group reader.
type Meta struct {
	Accession string
	Schema    *schema.TableSchema
	BlobMaps  map[schema.GroupName]rowrange.BlobMap
}

// Marshal serializes the table metadata as a self-describing tagged binary
// record, following the same magic/version/checksum discipline as a blob
// envelope so a reader can validate it without an out-of-band schema.
func (m *Meta) Marshal() []byte {
	body := m.marshalBody()

	header := make([]byte, 4+1+8)
	metaByteOrder.PutUint32(header[0:4], metaMagic)
	header[4] = metaVersion
	metaByteOrder.PutUint64(header[5:13], hash.Sum64(body))

	return append(header, body...)
}

func (m *Meta) marshalBody() []byte {
	bb := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(bb)

	bb.B = appendString(bb.B, m.Accession)
	bb.B = m.marshalSchema(bb.B)
	bb.B = m.marshalBlobMaps(bb.B)

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out
}

func (m *Meta) marshalSchema(buf []byte) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(m.Schema.Columns)))
	for _, name := range slices.Sorted(maps.Keys(m.Schema.Columns)) {
		def := m.Schema.Columns[name]
		buf = appendString(buf, string(name))
		buf = append(buf, byte(def.Comp))
		buf = binary.AppendVarint(buf, int64(def.Level))
		buf = appendString(buf, string(def.Group))
	}

	buf = binary.AppendUvarint(buf, uint64(len(m.Schema.Groups)))
	for _, name := range slices.Sorted(maps.Keys(m.Schema.Groups)) {
		def := m.Schema.Groups[name]
		buf = appendString(buf, string(name))
		buf = append(buf, byte(def.Comp))
		buf = binary.AppendVarint(buf, int64(def.Level))
		buf = binary.AppendVarint(buf, int64(def.Cutoff))
		buf = binary.AppendUvarint(buf, uint64(len(def.Cols)))
		for _, col := range def.Cols {
			buf = appendString(buf, string(col))
		}
	}

	return buf
}

func (m *Meta) marshalBlobMaps(buf []byte) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(m.BlobMaps)))
	for _, name := range slices.Sorted(maps.Keys(m.BlobMaps)) {
		bm := m.BlobMaps[name]
		buf = appendString(buf, string(name))
		buf = binary.AppendUvarint(buf, uint64(len(bm)))
		for _, e := range bm {
			buf = binary.AppendVarint(buf, int64(e.StartRow))
			buf = binary.AppendVarint(buf, int64(e.Count))
		}
	}

	return buf
}

// UnmarshalMeta decodes a Meta previously produced by Marshal, verifying
// its magic, version, and checksum first.
func UnmarshalMeta(data []byte) (*Meta, error) {
	if len(data) < 4+1+8 {
		return nil, fmt.Errorf("meta: %w: header", errs.ErrTruncated)
	}

	magic := metaByteOrder.Uint32(data[0:4])
	if magic != metaMagic {
		return nil, fmt.Errorf("meta: %w: bad magic %#x", errs.ErrBadEnvelope, magic)
	}

	version := data[4]
	if version != metaVersion {
		return nil, fmt.Errorf("meta: %w: unsupported version %d", errs.ErrBadEnvelope, version)
	}

	wantSum := metaByteOrder.Uint64(data[5:13])
	body := data[13:]
	if gotSum := hash.Sum64(body); gotSum != wantSum {
		return nil, fmt.Errorf("meta: %w: checksum mismatch", errs.ErrBadEnvelope)
	}

	d := &decoder{data: body}

	accession, err := d.string()
	if err != nil {
		return nil, fmt.Errorf("meta: accession: %w", err)
	}

	columns, groups, err := d.schema()
	if err != nil {
		return nil, fmt.Errorf("meta: schema: %w", err)
	}

	sch, err := schema.NewTableSchema(columns, groups)
	if err != nil {
		return nil, fmt.Errorf("meta: %w", err)
	}

	blobMaps, err := d.blobMaps()
	if err != nil {
		return nil, fmt.Errorf("meta: blobmaps: %w", err)
	}

	if !d.atEnd() {
		return nil, fmt.Errorf("meta: %w: trailing bytes", errs.ErrBadEnvelope)
	}

	return &Meta{Accession: accession, Schema: sch, BlobMaps: blobMaps}, nil
}

type decoder struct {
	data   []byte
	offset int
}

func (d *decoder) atEnd() bool { return d.offset == len(d.data) }

func (d *decoder) uvarint() (uint64, error) {
	v, n := binary.Uvarint(d.data[d.offset:])
	if n <= 0 {
		return 0, errs.ErrTruncated
	}
	d.offset += n

	return v, nil
}

func (d *decoder) varint() (int64, error) {
	v, n := binary.Varint(d.data[d.offset:])
	if n <= 0 {
		return 0, errs.ErrTruncated
	}
	d.offset += n

	return v, nil
}

func (d *decoder) byte() (byte, error) {
	if d.offset >= len(d.data) {
		return 0, errs.ErrTruncated
	}
	b := d.data[d.offset]
	d.offset++

	return b, nil
}

func (d *decoder) string() (string, error) {
	n, err := d.uvarint()
	if err != nil {
		return "", err
	}
	if d.offset+int(n) > len(d.data) {
		return "", errs.ErrTruncated
	}
	s := string(d.data[d.offset : d.offset+int(n)])
	d.offset += int(n)

	return s, nil
}

func (d *decoder) schema() (map[schema.ColumnName]schema.ColumnDef, map[schema.GroupName]schema.GroupDef, error) {
	colCount, err := d.uvarint()
	if err != nil {
		return nil, nil, err
	}

	columns := make(map[schema.ColumnName]schema.ColumnDef, colCount)
	for i := uint64(0); i < colCount; i++ {
		name, err := d.string()
		if err != nil {
			return nil, nil, err
		}
		compByte, err := d.byte()
		if err != nil {
			return nil, nil, err
		}
		level, err := d.varint()
		if err != nil {
			return nil, nil, err
		}
		group, err := d.string()
		if err != nil {
			return nil, nil, err
		}

		columns[schema.ColumnName(name)] = schema.ColumnDef{
			Comp:  format.CompKind(compByte),
			Level: int(level),
			Group: schema.GroupName(group),
		}
	}

	groupCount, err := d.uvarint()
	if err != nil {
		return nil, nil, err
	}

	groups := make(map[schema.GroupName]schema.GroupDef, groupCount)
	for i := uint64(0); i < groupCount; i++ {
		name, err := d.string()
		if err != nil {
			return nil, nil, err
		}
		compByte, err := d.byte()
		if err != nil {
			return nil, nil, err
		}
		level, err := d.varint()
		if err != nil {
			return nil, nil, err
		}
		cutoff, err := d.varint()
		if err != nil {
			return nil, nil, err
		}
		colsCount, err := d.uvarint()
		if err != nil {
			return nil, nil, err
		}

		cols := make([]schema.ColumnName, colsCount)
		for j := range cols {
			colName, err := d.string()
			if err != nil {
				return nil, nil, err
			}
			cols[j] = schema.ColumnName(colName)
		}

		groups[schema.GroupName(name)] = schema.GroupDef{
			Comp:   format.CompKind(compByte),
			Level:  int(level),
			Cutoff: int(cutoff),
			Cols:   cols,
		}
	}

	return columns, groups, nil
}

func (d *decoder) blobMaps() (map[schema.GroupName]rowrange.BlobMap, error) {
	count, err := d.uvarint()
	if err != nil {
		return nil, err
	}

	result := make(map[schema.GroupName]rowrange.BlobMap, count)
	for i := uint64(0); i < count; i++ {
		name, err := d.string()
		if err != nil {
			return nil, err
		}
		entryCount, err := d.uvarint()
		if err != nil {
			return nil, err
		}

		bm := make(rowrange.BlobMap, entryCount)
		for j := range bm {
			startRow, err := d.varint()
			if err != nil {
				return nil, err
			}
			count, err := d.varint()
			if err != nil {
				return nil, err
			}
			bm[j] = rowrange.Entry{StartRow: int(startRow), Count: int(count)}
		}

		result[schema.GroupName(name)] = bm
	}

	return result, nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	buf = append(buf, s...)

	return buf
}
