package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
)

// Bz2Codec compresses with bzip2 (format.CompBz2).
//
// Uses dsnet/compress/bzip2 rather than the standard library: stdlib
// compress/bzip2 is decode-only and cannot serve as a Compressor.
type Bz2Codec struct{}

var _ Codec = Bz2Codec{}

// NewBz2Codec creates a new bzip2 codec.
func NewBz2Codec() Bz2Codec {
	return Bz2Codec{}
}

// clampBz2Level maps an arbitrary level onto bzip2's 1..9 range.
func clampBz2Level(level int) int {
	switch {
	case level <= 0:
		return bzip2.DefaultCompression
	case level < bzip2.BestSpeed:
		return bzip2.BestSpeed
	case level > bzip2.BestCompression:
		return bzip2.BestCompression
	default:
		return level
	}
}

// Compress compresses data using bzip2 at the given level.
func (c Bz2Codec) Compress(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer

	w, err := bzip2.NewWriterLevel(&buf, clampBz2Level(level))
	if err != nil {
		return nil, fmt.Errorf("compress: create bzip2 writer: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("compress: bzip2 write: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress: bzip2 close: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses bzip2-compressed data.
func (c Bz2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := bzip2.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("compress: bzip2 reader: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("compress: bzip2 decompression failed: %w", err)
	}

	return out, nil
}
