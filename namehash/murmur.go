package namehash

import (
	"encoding/binary"
	"math/bits"
)

const (
	c1 = 0xcc9e2d51
	c2 = 0x1b873593
)

// State is an incremental MurmurHash3 x86_32 accumulator.
//
// H is the running hash. Carry holds up to three pending bytes in its high
// bits and their count in the low two bits.
type State struct {
	H     uint32
	Carry uint32
}

// NewState returns a State seeded with seed.
func NewState(seed uint32) State {
	return State{H: seed}
}

func mixBlock(h, k uint32) uint32 {
	k *= c1
	k = bits.RotateLeft32(k, 15)
	k *= c2
	h ^= k
	h = bits.RotateLeft32(h, 13)
	return h*5 + 0xe6546b64
}

// Process feeds data into the state.
func (s *State) Process(data []byte) {
	h := s.H
	c := s.Carry
	n := c & 3

	// Top up a partially filled carry first.
	for n != 0 && len(data) > 0 {
		c = c>>8 | uint32(data[0])<<24
		data = data[1:]
		n++
		if n == 4 {
			h = mixBlock(h, c)
			n = 0
		}
	}

	if n == 0 {
		for len(data) >= 4 {
			h = mixBlock(h, binary.LittleEndian.Uint32(data))
			data = data[4:]
		}
	}

	for _, b := range data {
		c = c>>8 | uint32(b)<<24
		n++
		if n == 4 {
			h = mixBlock(h, c)
			n = 0
		}
	}

	s.H = h
	s.Carry = c&^3 | n
}

// ProcessString feeds the bytes of str into the state without copying.
func (s *State) ProcessString(str string) {
	if len(str) == 0 {
		return
	}
	s.Process(stringBytes(str))
}

// Sum finalizes the hash. total is the number of bytes fed so far.
// The state itself is left unchanged.
func (s State) Sum(total uint32) uint32 {
	h := s.H
	if n := s.Carry & 3; n != 0 {
		k := s.Carry >> ((4 - n) * 8)
		k *= c1
		k = bits.RotateLeft32(k, 15)
		k *= c2
		h ^= k
	}
	h ^= total
	return fmix32(h)
}

func fmix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// Sum32 returns the MurmurHash3 x86_32 hash of data.
func Sum32(seed uint32, data []byte) uint32 {
	st := NewState(seed)
	st.Process(data)
	return st.Sum(uint32(len(data))) //nolint:gosec // names are far below 4 GiB
}
