// Package strindex is a string-keyed hash index whose hashes are supplied by
// the caller.
//
// Keys are (bytes, length, hash) triples; the index never hashes anything
// itself, so a hash computed once at a call site can be reused for every
// probe. Probing is linear over a power-of-two table. The index is
// insert-only and not safe for concurrent mutation.
package strindex

const (
	minCapacity = 8
	// Grow when count exceeds 3/4 of the table.
	loadNum = 3
	loadDen = 4
)

type slot struct {
	key  string
	hash uint32
	// val is the stored value plus one; zero marks an empty slot.
	val uint32
}

// Map maps keys to uint32 values.
type Map struct {
	slots []slot
	mask  uint32
	count int
}

// New returns an empty Map.
func New() *Map {
	return &Map{}
}

// Len returns the number of keys stored.
func (m *Map) Len() int {
	return m.count
}

// Reserve sizes the table so that n keys fit without rehashing.
func (m *Map) Reserve(n int) {
	want := minCapacity
	for want*loadNum/loadDen < n {
		want <<= 1
	}
	if want > len(m.slots) {
		m.rehash(want)
	}
}

// Find returns the value stored under key. hash must be the hash key was
// inserted with; a different hash gives an unspecified answer.
func (m *Map) Find(key string, hash uint32) (uint32, bool) {
	if m.count == 0 {
		return 0, false
	}
	for i := hash & m.mask; ; i = (i + 1) & m.mask {
		s := &m.slots[i]
		if s.val == 0 {
			return 0, false
		}
		if s.hash == hash && s.key == key {
			return s.val - 1, true
		}
	}
}

// FindBytes is Find for a key held as bytes.
func (m *Map) FindBytes(key []byte, hash uint32) (uint32, bool) {
	if m.count == 0 {
		return 0, false
	}
	for i := hash & m.mask; ; i = (i + 1) & m.mask {
		s := &m.slots[i]
		if s.val == 0 {
			return 0, false
		}
		if s.hash == hash && s.key == string(key) {
			return s.val - 1, true
		}
	}
}

// Put stores val under key unless key is already present, in which case the
// map is left unchanged and Put returns false. The map retains key; the
// caller must keep its bytes alive and unmodified.
func (m *Map) Put(key string, hash uint32, val uint32) bool {
	if val == ^uint32(0) {
		panic("strindex: value out of range")
	}
	if (m.count+1)*loadDen > len(m.slots)*loadNum {
		m.rehash(max(minCapacity, len(m.slots)*2))
	}
	for i := hash & m.mask; ; i = (i + 1) & m.mask {
		s := &m.slots[i]
		if s.val == 0 {
			*s = slot{key: key, hash: hash, val: val + 1}
			m.count++
			return true
		}
		if s.hash == hash && s.key == key {
			return false
		}
	}
}

func (m *Map) rehash(capacity int) {
	old := m.slots
	m.slots = make([]slot, capacity)
	m.mask = uint32(capacity - 1) //nolint:gosec // capacity is a power of two far below 2^32
	for _, s := range old {
		if s.val == 0 {
			continue
		}
		i := s.hash & m.mask
		for m.slots[i].val != 0 {
			i = (i + 1) & m.mask
		}
		m.slots[i] = s
	}
}
