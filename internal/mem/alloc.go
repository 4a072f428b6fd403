package mem

import (
	"unsafe"
)

// Alignment is the cache-line size blocks are aligned to.
const Alignment = 64

// AllocAligned allocates a zeroed byte slice of the given size whose first
// byte is Alignment-aligned. It returns nil for size <= 0.
//
// The slice is carved out of a slightly larger allocation; the underlying
// array stays alive as long as the returned slice does.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	buf := make([]byte, size+Alignment)

	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // unsafe is required for memory alignment
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}

// Align rounds n up to the next multiple of a. a must be a power of two.
func Align(n, a int) int {
	mask := a - 1
	return (n + mask) &^ mask
}
