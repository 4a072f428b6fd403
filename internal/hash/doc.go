// Package hash provides CRC32-Castagnoli checksums for persisted schema blobs.
//
// The catalog stores a CRC32C of every encoded schema payload in the blob
// header and verifies it on load:
//
//	checksum := hash.CRC32C(payload)
//
// For payloads assembled from several pieces:
//
//	h := hash.NewCRC32C()
//	h.Write(header)
//	h.Write(body)
//	checksum := h.Sum32()
//
// Go's crc32 package uses SSE4.2 / ARM CRC instructions when available.
package hash
