package cell

import (
	"encoding/binary"
	"fmt"

	"github.com/readtable/readtable/endian"
	"github.com/readtable/readtable/errs"
	"github.com/readtable/readtable/internal/hash"
	"github.com/readtable/readtable/internal/pool"
)

const (
	envelopeMagic   = uint32(0x52544247) // "RTBG" - read-table blob group
	envelopeVersion = uint8(1)
)

var envelopeByteOrder = endian.GetLittleEndianEngine()

// Entry is one named, already-compressed column payload inside an Envelope.
type Entry struct {
	Name    string
	Payload []byte
}

// Envelope is the group's blob plaintext: the ordered names/encoded_columns
// pairs that get compressed together by the group's outer codec. It is the
// direct wire analogue of the blob file format's "names" and
// "encoded_columns" fields.
type Envelope struct {
	Entries []Entry
}

// Marshal serializes the envelope: magic, version, a checksum of everything
// that follows, an entry count, then for each entry a length-prefixed name
// and a length-prefixed payload.
func (e Envelope) Marshal() []byte {
	body := marshalEnvelopeBody(e.Entries)

	header := make([]byte, 4+1+8)
	envelopeByteOrder.PutUint32(header[0:4], envelopeMagic)
	header[4] = envelopeVersion
	envelopeByteOrder.PutUint64(header[5:13], hash.Sum64(body))

	return append(header, body...)
}

func marshalEnvelopeBody(entries []Entry) []byte {
	bb := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(bb)

	bb.B = binary.AppendUvarint(bb.B, uint64(len(entries)))
	for _, e := range entries {
		bb.B = binary.AppendUvarint(bb.B, uint64(len(e.Name)))
		bb.B = append(bb.B, e.Name...)
		bb.B = binary.AppendUvarint(bb.B, uint64(len(e.Payload)))
		bb.B = append(bb.B, e.Payload...)
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out
}

// UnmarshalEnvelope decodes an envelope previously produced by Marshal,
// verifying its magic, version, and checksum before trusting its contents.
func UnmarshalEnvelope(data []byte) (Envelope, error) {
	if len(data) < 4+1+8 {
		return Envelope{}, fmt.Errorf("envelope: %w: header", errs.ErrTruncated)
	}

	magic := envelopeByteOrder.Uint32(data[0:4])
	if magic != envelopeMagic {
		return Envelope{}, fmt.Errorf("envelope: %w: bad magic %#x", errs.ErrBadEnvelope, magic)
	}

	version := data[4]
	if version != envelopeVersion {
		return Envelope{}, fmt.Errorf("envelope: %w: unsupported version %d", errs.ErrBadEnvelope, version)
	}

	wantSum := envelopeByteOrder.Uint64(data[5:13])
	body := data[13:]
	if gotSum := hash.Sum64(body); gotSum != wantSum {
		return Envelope{}, fmt.Errorf("envelope: %w: checksum mismatch", errs.ErrBadEnvelope)
	}

	count, offset, err := readUvarint(body, 0)
	if err != nil {
		return Envelope{}, fmt.Errorf("envelope: entry count: %w", err)
	}

	entries := make([]Entry, count)
	for i := range entries {
		nameLen, next, err := readUvarint(body, offset)
		if err != nil {
			return Envelope{}, fmt.Errorf("envelope: entry %d name length: %w", i, err)
		}
		offset = next
		if offset+int(nameLen) > len(body) {
			return Envelope{}, fmt.Errorf("envelope: %w: entry %d name", errs.ErrTruncated, i)
		}
		name := string(body[offset : offset+int(nameLen)])
		offset += int(nameLen)

		payloadLen, next, err := readUvarint(body, offset)
		if err != nil {
			return Envelope{}, fmt.Errorf("envelope: entry %d payload length: %w", i, err)
		}
		offset = next
		if offset+int(payloadLen) > len(body) {
			return Envelope{}, fmt.Errorf("envelope: %w: entry %d payload", errs.ErrTruncated, i)
		}
		payload := body[offset : offset+int(payloadLen)]
		offset += int(payloadLen)

		entries[i] = Entry{Name: name, Payload: payload}
	}

	if offset != len(body) {
		return Envelope{}, fmt.Errorf("envelope: %w: %d trailing bytes", errs.ErrBadEnvelope, len(body)-offset)
	}

	return Envelope{Entries: entries}, nil
}

// Get returns the payload for the named entry, or nil and false if absent.
func (e Envelope) Get(name string) ([]byte, bool) {
	for _, entry := range e.Entries {
		if entry.Name == name {
			return entry.Payload, true
		}
	}

	return nil, false
}
