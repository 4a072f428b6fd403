package tupleformat

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/locker/tarantool/namehash"
	"github.com/locker/tarantool/tupledict"
)

// ErrFieldNotFound is returned when a field name is not part of a format.
var ErrFieldNotFound = errors.New("field not found")

// ErrReleased is returned when operating on a format whose last reference
// has been released.
var ErrReleased = errors.New("format released")

// FieldKey is a field name with its precomputed hash. Build keys once per
// access site and reuse them for every tuple.
type FieldKey struct {
	Name string
	Hash uint32
}

// NewFieldKey hashes name with fn.
func NewFieldKey(fn namehash.Func, name string) FieldKey {
	return FieldKey{Name: name, Hash: fn(name)}
}

// Format is a registered tuple format. Formats are created and released
// through a Registry.
//
// Read methods take the registry's read lock, so they may run concurrently
// with Registry.Alter on the same format. Strings they return are copies
// and stay valid after an Alter.
type Format struct {
	reg    *Registry
	dict   *tupledict.Dictionary
	digest uint32
	refs   int
}

// Key builds a FieldKey for name using the format's name hash.
func (f *Format) Key(name string) FieldKey {
	f.reg.mu.RLock()
	defer f.reg.mu.RUnlock()
	return NewFieldKey(f.dict.NameHash(), name)
}

// FieldNo returns the ordinal of the field k names.
func (f *Format) FieldNo(k FieldKey) (uint32, bool) {
	f.reg.mu.RLock()
	defer f.reg.mu.RUnlock()
	return f.dict.FieldNo(k.Name, k.Hash)
}

// FieldNoByName hashes name and looks it up. Prefer FieldNo with a reused
// key on hot paths.
func (f *Format) FieldNoByName(name string) (uint32, bool) {
	f.reg.mu.RLock()
	defer f.reg.mu.RUnlock()
	return f.dict.FieldNo(name, f.dict.NameHash()(name))
}

// FieldName returns the name of field i.
func (f *Format) FieldName(i uint32) string {
	f.reg.mu.RLock()
	defer f.reg.mu.RUnlock()
	return strings.Clone(f.dict.Name(i))
}

// FieldCount returns the number of named fields.
func (f *Format) FieldCount() uint32 {
	f.reg.mu.RLock()
	defer f.reg.mu.RUnlock()
	return f.dict.Len()
}

// Names returns a copy of the field names in ordinal order.
func (f *Format) Names() []string {
	f.reg.mu.RLock()
	defer f.reg.mu.RUnlock()
	names := f.dict.Names()
	for i, name := range names {
		names[i] = strings.Clone(name)
	}
	return names
}

// Dict returns the format's dictionary. The handle itself survives Alter,
// but its contents do not: callers reading it directly, or keeping it
// with Ref, must not race with Registry.Alter.
func (f *Format) Dict() *tupledict.Dictionary {
	return f.dict
}

// Digest returns the hash of the format's field names in order.
func (f *Format) Digest() uint32 {
	f.reg.mu.RLock()
	defer f.reg.mu.RUnlock()
	return f.digest
}

// Project resolves keys to the set of their ordinals.
func (f *Format) Project(keys ...FieldKey) (*roaring.Bitmap, error) {
	f.reg.mu.RLock()
	defer f.reg.mu.RUnlock()
	return f.project(keys)
}

// ProjectNames is Project for plain names.
func (f *Format) ProjectNames(names ...string) (*roaring.Bitmap, error) {
	f.reg.mu.RLock()
	defer f.reg.mu.RUnlock()
	fn := f.dict.NameHash()
	keys := make([]FieldKey, len(names))
	for i, name := range names {
		keys[i] = NewFieldKey(fn, name)
	}
	return f.project(keys)
}

func (f *Format) project(keys []FieldKey) (*roaring.Bitmap, error) {
	bm := roaring.New()
	for _, k := range keys {
		no, ok := f.dict.FieldNo(k.Name, k.Hash)
		if !ok {
			return nil, fmt.Errorf("project %q: %w", k.Name, ErrFieldNotFound)
		}
		bm.Add(no)
	}
	return bm, nil
}

func (f *Format) String() string {
	f.reg.mu.RLock()
	defer f.reg.mu.RUnlock()
	return f.dict.String()
}

func digest(d *tupledict.Dictionary) uint32 {
	st := namehash.NewState(namehash.DefaultSeed)
	// Lists whose names concatenate alike still collide; find compares names.
	st.Process(binary.LittleEndian.AppendUint32(nil, d.Len()))
	size := d.HashProcess(&st)
	return st.Sum(size + 4)
}
