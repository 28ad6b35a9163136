package compress

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// ZlibCodec compresses with DEFLATE wrapped in a zlib stream (format.CompZlib).
//
// This is the one codec in the package built on the standard library rather
// than a third-party module: no example in this codebase's dependency
// lineage wires a replacement zlib *writer* (the zlib-touching code found
// there only reads existing zlib streams), and stdlib compress/zlib is
// itself the ecosystem's idiomatic choice for a plain zlib stream.
type ZlibCodec struct{}

var _ Codec = ZlibCodec{}

// NewZlibCodec creates a new zlib codec.
func NewZlibCodec() ZlibCodec {
	return ZlibCodec{}
}

// clampZlibLevel maps an arbitrary level onto zlib's valid range.
func clampZlibLevel(level int) int {
	switch {
	case level == 0:
		return zlib.DefaultCompression
	case level < zlib.HuffmanOnly:
		return zlib.HuffmanOnly
	case level > zlib.BestCompression:
		return zlib.BestCompression
	default:
		return level
	}
}

// Compress compresses data using zlib at the given level.
func (c ZlibCodec) Compress(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer

	w, err := zlib.NewWriterLevel(&buf, clampZlibLevel(level))
	if err != nil {
		return nil, fmt.Errorf("compress: create zlib writer: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("compress: zlib write: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress: zlib close: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses zlib-compressed data.
func (c ZlibCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("compress: zlib reader: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("compress: zlib decompression failed: %w", err)
	}

	return out, nil
}
