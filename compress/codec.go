package compress

import (
	"fmt"

	"github.com/readtable/readtable/errs"
	"github.com/readtable/readtable/format"
)

// Compressor compresses a byte slice at a given level. Level semantics are
// algorithm-specific; implementations document their own range and default.
type Compressor interface {
	Compress(data []byte, level int) ([]byte, error)
}

// Decompressor decompresses a byte slice produced by the matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression for one CompKind.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that returns the Codec for a CompKind.
//
// target is a short human-readable description of the caller (e.g. a group
// or column name) used to make error messages traceable; it does not affect
// behavior.
func CreateCodec(kind format.CompKind, target string) (Codec, error) {
	switch kind {
	case format.CompNone:
		return NewNoOpCodec(), nil
	case format.CompZlib:
		return NewZlibCodec(), nil
	case format.CompGzip:
		return NewGzipCodec(), nil
	case format.CompZstd:
		return NewZstdCodec(), nil
	case format.CompBz2:
		return NewBz2Codec(), nil
	default:
		return nil, fmt.Errorf("compress: %w for %s: %s", errs.ErrUnknownComp, target, kind)
	}
}

var builtinCodecs = map[format.CompKind]Codec{
	format.CompNone: NewNoOpCodec(),
	format.CompZlib: NewZlibCodec(),
	format.CompGzip: NewGzipCodec(),
	format.CompZstd: NewZstdCodec(),
	format.CompBz2:  NewBz2Codec(),
}

// GetCodec retrieves the built-in Codec singleton for a CompKind.
func GetCodec(kind format.CompKind) (Codec, error) {
	if codec, ok := builtinCodecs[kind]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("compress: %w: %s", errs.ErrUnknownComp, kind)
}
