// Package grpalloc implements group allocation: many logically distinct
// regions carved out of one contiguous block.
//
// Allocation is two-phase. First every region is reserved, in order, which
// records a manifest and accumulates the total size. Then one block of that
// size is attached with Use and the regions are created in exactly the
// reservation order:
//
//	var a grpalloc.Allocator
//	a.ReserveData(n * 8)
//	for _, s := range names {
//		a.ReserveStr0(s)
//	}
//	block, _ := grpalloc.Heap.Alloc(a.Size())
//	a.Use(block)
//	refs := a.CreateData(n * 8)
//	for _, s := range names {
//		off := a.CreateStr(s)
//	}
//
// Creating regions in a different order, count or size than they were
// reserved is a programming error and panics.
//
// Data regions are rounded up to 8 bytes so a data region reserved first
// starts on the block's alignment. Strings are copied and NUL-terminated.
package grpalloc
