package namehash

import (
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// Func hashes a field name.
//
// A dictionary and every caller looking names up in it must use the same
// Func; lookups trust the hash they are given.
type Func func(name string) uint32

// DefaultSeed is the Murmur3 seed of Default.
const DefaultSeed = 13

// Default is the name hash used when a dictionary is built without one.
var Default = Murmur3(DefaultSeed)

// Murmur3 returns a Func computing MurmurHash3 x86_32 with the given seed.
func Murmur3(seed uint32) Func {
	return func(name string) uint32 {
		return Sum32(seed, stringBytes(name))
	}
}

// XXHash hashes a name with xxHash64 and folds the result to 32 bits.
func XXHash(name string) uint32 {
	h := xxhash.Sum64String(name)
	return uint32(h) ^ uint32(h>>32) //nolint:gosec // intentional fold
}

// Bytes hashes a name given as raw bytes with fn.
func (fn Func) Bytes(name []byte) uint32 {
	if len(name) == 0 {
		return fn("")
	}
	return fn(unsafe.String(&name[0], len(name))) //nolint:gosec // read-only view for the duration of the call
}

func stringBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s)) //nolint:gosec // read-only view
}
