// Package mem provides heap allocation helpers for arena blocks.
//
// # Aligned Allocation
//
// AllocAligned returns a byte slice whose first byte sits on a cache-line
// boundary, so a dictionary's name-reference array starts aligned and the
// name bytes that follow it are packed into as few lines as possible.
package mem
