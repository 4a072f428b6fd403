package grpalloc

import (
	"fmt"

	"github.com/locker/tarantool/internal/mem"
	"github.com/locker/tarantool/internal/mmap"
)

// Block is one contiguous allocation backing a group of regions.
type Block struct {
	data    []byte
	mapping *mmap.Mapping
}

// Bytes returns the block memory.
func (b *Block) Bytes() []byte {
	return b.data
}

// Len returns the block size in bytes.
func (b *Block) Len() int {
	return len(b.data)
}

// OffHeap reports whether the block lives outside the Go heap.
func (b *Block) OffHeap() bool {
	return b.mapping != nil
}

// Release frees the block. Heap blocks are dropped for the GC; off-heap
// blocks are unmapped immediately.
func (b *Block) Release() error {
	b.data = nil
	if b.mapping == nil {
		return nil
	}
	err := b.mapping.Close()
	b.mapping = nil
	return err
}

// Source hands out blocks.
type Source interface {
	Alloc(size int) (*Block, error)
}

type heapSource struct{}

func (heapSource) Alloc(size int) (*Block, error) {
	return &Block{data: mem.AllocAligned(size)}, nil
}

type offHeapSource struct{}

func (offHeapSource) Alloc(size int) (*Block, error) {
	if size <= 0 {
		return &Block{}, nil
	}
	m, err := mmap.MapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("grpalloc: map %d bytes: %w", size, err)
	}
	_ = m.Advise(mmap.AdviseRandom)
	return &Block{data: m.Bytes()[:size:size], mapping: m}, nil
}

var (
	// Heap allocates cache-line aligned blocks on the Go heap.
	Heap Source = heapSource{}
	// OffHeap allocates blocks from anonymous memory mappings.
	OffHeap Source = offHeapSource{}
)
