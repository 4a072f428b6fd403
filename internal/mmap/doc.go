// Package mmap provides memory mappings for off-heap dictionary blocks and
// zero-copy reads of locally stored schema blobs.
//
// # Anonymous Mappings
//
// MapAnon returns a read-write private mapping outside the Go heap. A
// dictionary built with the off-heap option carves its name array and name
// bytes out of one such mapping and unmaps it when its last reference is
// dropped. Touching the bytes after Close faults, which is the intended
// behavior for a use-after-release bug.
//
// # File Mappings
//
//	m, err := mmap.Open("schemas/users.tdct")
//	if err != nil { ... }
//	defer m.Close()
//
//	m.Advise(mmap.AdviseSequential)
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) hints
//   - Windows: CreateFileMapping/MapViewOfFile and VirtualAlloc (hints are no-ops)
//
// Close is idempotent. Callers must not use Bytes after Close returns.
package mmap
