// Package hash provides the fast, non-cryptographic hash used for blob
// integrity checksums.
package hash

import "github.com/cespare/xxhash/v2"

// Sum64 computes the xxHash64 of the given bytes.
//
// It is used to checksum a group envelope's plaintext (the serialized
// names/encoded_columns record, before outer compression) so a reader can
// detect a corrupted or truncated blob after decompression.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}
