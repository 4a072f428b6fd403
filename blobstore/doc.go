// Package blobstore stores the catalog's schema blobs.
//
// Store is the interface for reading and writing named, immutable blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and ephemeral catalogs
//   - LocalStore: local filesystem, atomic writes and mmap reads
//   - minio.Store: MinIO and other S3-compatible object stores
//
// # Custom Implementations
//
// Implement the Store interface to support custom storage backends:
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Blobs backed by a memory mapping may also implement Mappable, which lets
// ReadAll skip the copy through a reader.
package blobstore
