package mmap

import "errors"

// Advice tells the kernel how a mapping will be read.
type Advice int

const (
	// AdviseNormal clears any earlier advice.
	AdviseNormal Advice = iota
	// AdviseSequential suits schema blobs, which are decoded front to back
	// exactly once.
	AdviseSequential
	// AdviseRandom suits off-heap dictionary blocks, where every name lookup
	// probes an unpredictable slot of the name array.
	AdviseRandom
)

var (
	// ErrClosed is returned by reads and advice on an unmapped mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned for a non-positive anonymous size or a
	// file too large to address.
	ErrInvalidSize = errors.New("mmap: invalid size")
	// ErrInvalidOffset is returned by ReadAt for a negative offset.
	ErrInvalidOffset = errors.New("mmap: invalid offset")
)
