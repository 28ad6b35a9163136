package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipCodec compresses with DEFLATE wrapped in a gzip stream (format.CompGzip).
//
// Uses klauspost/compress/gzip, a drop-in replacement for the standard
// library's compress/gzip with the same stream format and a faster
// implementation; it is already part of this codebase's compression
// dependency (shared with ZstdCodec).
type GzipCodec struct{}

var _ Codec = GzipCodec{}

// NewGzipCodec creates a new gzip codec.
func NewGzipCodec() GzipCodec {
	return GzipCodec{}
}

// clampGzipLevel maps an arbitrary level onto gzip's valid range.
func clampGzipLevel(level int) int {
	switch {
	case level == 0:
		return gzip.DefaultCompression
	case level < gzip.HuffmanOnly:
		return gzip.HuffmanOnly
	case level > gzip.BestCompression:
		return gzip.BestCompression
	default:
		return level
	}
}

// Compress compresses data using gzip at the given level.
func (c GzipCodec) Compress(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer

	w, err := gzip.NewWriterLevel(&buf, clampGzipLevel(level))
	if err != nil {
		return nil, fmt.Errorf("compress: create gzip writer: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("compress: gzip write: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress: gzip close: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses gzip-compressed data.
func (c GzipCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("compress: gzip reader: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("compress: gzip decompression failed: %w", err)
	}

	return out, nil
}
