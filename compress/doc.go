// Package compress provides the codec layer for the blob store: a pure
// Compress/Decompress pair per format.CompKind.
//
// # Overview
//
// Every column and every group carries its own CompKind and level
// (spec §3, ColumnDef.comp/level and GroupDef.comp/level). The codec
// layer does not know about columns, groups, or rows — it only turns a
// byte slice and a level into a compressed byte slice, and back.
//
//	codec, err := compress.CreateCodec(format.CompZstd, "group g")
//	compressed, err := codec.Compress(plaintext, level)
//	original, err := codec.Decompress(compressed)
//
// # Supported algorithms
//
//   - None (format.CompNone): identity, zero overhead.
//   - Zlib (format.CompZlib): stdlib compress/zlib, DEFLATE + Adler-32.
//   - Gzip (format.CompGzip): klauspost/compress/gzip, DEFLATE + CRC-32,
//     faster than stdlib gzip at the same compression ratio.
//   - Zstd (format.CompZstd): klauspost/compress/zstd, best ratio, pooled
//     decoders and a fresh encoder per call.
//   - Bz2 (format.CompBz2): dsnet/compress/bzip2, Burrows-Wheeler based;
//     stdlib compress/bzip2 is decode-only, so this is the writer-capable
//     sibling used here.
//
// Level semantics follow each algorithm's own convention; this package
// does not reinterpret level 1..9 uniformly across algorithms.
//
// # Determinism
//
// Encoders are created per call so
// that Compress(data, level) is deterministic for a given algorithm and
// level: the same logical input always produces byte-identical output,
// which the cell and group packages rely on for golden-comparison tests.
package compress
