// Package catalog persists named tuple schemas to a blobstore.Store and
// loads them back as registered formats.
//
// Each schema is one blob:
//
//	[magic "TDCT"][version u8][compression u8][codec len u8][codec name]
//	[crc32c u32 LE][payload]
//
// The payload is the codec-encoded record, framed by internal/compress.
// The checksum covers the payload. Readers pick the codec recorded in the
// blob, so the default codec can change without rewriting old schemas.
//
// Reload is the hot-reload path: it reads a schema and alters a live
// format in place, so every holder of the format sees the stored names.
package catalog
