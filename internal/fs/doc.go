// Package fs abstracts the filesystem calls of blobstore.LocalStore so
// tests can inject write, sync, close and rename failures.
//
// Production code uses fs.Default ([LocalFS]). Tests wrap it in a
// [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp", fs.Fault{FailOnSync: true})
//
// Calls take no context.Context: local filesystem syscalls cannot be
// interrupted. Callers check their context between calls.
package fs
