package grpalloc

import (
	"fmt"
)

const dataAlign = 8

type region struct {
	size int
	str  bool
}

// Allocator records a manifest of regions and then carves them out of one
// block. The zero value is ready for reservation.
type Allocator struct {
	manifest []region
	next     int
	remain   int
	block    []byte
	pos      int
}

func alignData(size int) int {
	return (size + dataAlign - 1) &^ (dataAlign - 1)
}

// ReserveData reserves a raw data region of size bytes.
func (a *Allocator) ReserveData(size int) {
	a.mustReserving()
	size = alignData(size)
	a.manifest = append(a.manifest, region{size: size})
	a.remain += size
}

// ReserveStr0 reserves room for s plus a NUL terminator.
func (a *Allocator) ReserveStr0(s string) {
	a.mustReserving()
	size := len(s) + 1
	a.manifest = append(a.manifest, region{size: size, str: true})
	a.remain += size
}

// Size returns the number of bytes reserved but not yet created.
func (a *Allocator) Size() int {
	return a.remain
}

// Use attaches the block regions are carved from. Its length must equal Size.
func (a *Allocator) Use(block *Block) {
	a.mustReserving()
	if block.Len() != a.remain {
		panic(fmt.Sprintf("grpalloc: block of %d bytes, reserved %d", block.Len(), a.remain))
	}
	a.block = block.Bytes()
	if a.block == nil {
		a.block = []byte{}
	}
}

// CreateData carves the next region, which must have been reserved with
// ReserveData(size).
func (a *Allocator) CreateData(size int) []byte {
	r := a.take(region{size: alignData(size)})
	return a.block[r : r+size : r+size]
}

// CreateStr copies s and its NUL terminator into the next region, which
// must have been reserved with ReserveStr0(s), and returns its offset
// within the block.
func (a *Allocator) CreateStr(s string) int {
	off := a.take(region{size: len(s) + 1, str: true})
	copy(a.block[off:], s)
	a.block[off+len(s)] = 0
	return off
}

func (a *Allocator) take(want region) int {
	if a.block == nil {
		panic("grpalloc: create before Use")
	}
	if a.next >= len(a.manifest) {
		panic("grpalloc: more regions created than reserved")
	}
	if got := a.manifest[a.next]; got != want {
		panic(fmt.Sprintf("grpalloc: region %d created as %+v, reserved as %+v", a.next, want, got))
	}
	a.next++
	off := a.pos
	a.pos += want.size
	a.remain -= want.size
	return off
}

func (a *Allocator) mustReserving() {
	if a.block != nil {
		panic("grpalloc: reserve after Use")
	}
}
