package tupledict

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unsafe"

	"github.com/locker/tarantool/internal/conv"
	"github.com/locker/tarantool/internal/grpalloc"
	"github.com/locker/tarantool/internal/strindex"
	"github.com/locker/tarantool/namehash"
	"github.com/locker/tarantool/resource"
)

// nameRef locates a name inside the block. It holds no Go pointers so the
// array of them can live inside the block itself.
type nameRef struct {
	off uint32
	len uint32
}

const nameRefSize = int(unsafe.Sizeof(nameRef{}))

// payload is everything Swap exchanges.
type payload struct {
	count   uint32
	block   *grpalloc.Block
	names   []nameRef
	index   *strindex.Map
	charged int64
	opts    *options
}

// Dictionary maps the field names of a tuple format to field ordinals.
//
// The zero value is not usable; build dictionaries with New, NewFrom or Dup.
type Dictionary struct {
	payload
	refs int
}

// New builds a dictionary over names. Ordinal i is assigned to names[i].
// An empty names yields a dictionary with no fields.
//
// If a name repeats, New returns *ErrDuplicateFieldName and nothing it
// allocated outlives the call.
func New(names []string, opts ...Option) (*Dictionary, error) {
	return build(len(names), func(i int) string { return names[i] }, applyOptions(opts))
}

// NewFrom builds a dictionary over any field definition type, projecting
// each definition's name with name.
func NewFrom[T any](defs []T, name func(*T) string, opts ...Option) (*Dictionary, error) {
	return build(len(defs), func(i int) string { return name(&defs[i]) }, applyOptions(opts))
}

func build(n int, nameAt func(int) string, o *options) (*Dictionary, error) {
	start := time.Now()
	d := &Dictionary{refs: 1}
	d.opts = o
	if n == 0 {
		o.metrics.RecordBuild(0, 0, time.Since(start), nil)
		o.logger.LogBuild(context.Background(), 0, 0, false)
		return d, nil
	}

	p, err := buildPayload(n, nameAt, o)
	if err != nil {
		o.metrics.RecordBuild(n, 0, time.Since(start), err)
		return nil, err
	}
	d.payload = p

	o.metrics.RecordBuild(n, p.block.Len(), time.Since(start), nil)
	o.logger.LogBuild(context.Background(), n, p.block.Len(), p.block.OffHeap())
	return d, nil
}

func buildPayload(n int, nameAt func(int) string, o *options) (payload, error) {
	var a grpalloc.Allocator
	a.ReserveData(n * nameRefSize)
	for i := 0; i < n; i++ {
		a.ReserveStr0(nameAt(i))
	}

	size := a.Size()
	// Offsets and lengths are stored as uint32.
	if _, err := conv.Uint32(size); err != nil {
		return payload{}, fmt.Errorf("tupledict: dictionary too large: %w", err)
	}

	charged := int64(size)
	if !o.memory.TryAcquireMemory(charged) {
		return payload{}, fmt.Errorf("tupledict: charge %d bytes: %w", size, resource.ErrMemoryLimitExceeded)
	}

	block, err := o.source.Alloc(size)
	if err != nil {
		o.memory.ReleaseMemory(charged)
		return payload{}, err
	}
	a.Use(block)

	raw := a.CreateData(n * nameRefSize)
	names := unsafe.Slice((*nameRef)(unsafe.Pointer(&raw[0])), n) //nolint:gosec // raw is 8-aligned and sized for n refs

	index := strindex.New()
	index.Reserve(n)

	data := block.Bytes()
	for i := 0; i < n; i++ {
		name := nameAt(i)
		off := a.CreateStr(name)
		names[i] = nameRef{off: uint32(off), len: uint32(len(name))} //nolint:gosec // bounded by size

		// The index keys on the arena copy, not the caller's string.
		key := unsafe.String(&data[off], len(name)) //nolint:gosec // block outlives the index
		if !index.Put(key, o.nameHash(key), uint32(i)) { //nolint:gosec // i < n <= MaxUint32
			_ = block.Release()
			o.memory.ReleaseMemory(charged)
			return payload{}, &ErrDuplicateFieldName{Name: strings.Clone(name)}
		}
	}
	if a.Size() != 0 {
		panic("tupledict: group allocation not fully consumed")
	}

	return payload{
		count:   uint32(n), //nolint:gosec // n <= size <= MaxUint32
		block:   block,
		names:   names,
		index:   index,
		charged: charged,
		opts:    o,
	}, nil
}

// Dup builds an independent dictionary holding the same names, in the same
// order and with the same options, as d. The copy has its own block and
// index and one reference.
//
// Dup does not fail. If the memory controller refuses the charge or the
// off-heap mapping cannot be created, the copy is built on the heap without
// memory accounting and a warning is logged.
func (d *Dictionary) Dup() *Dictionary {
	n := int(d.count)
	nameAt := d.Name
	cp, err := build(n, func(i int) string { return nameAt(uint32(i)) }, d.opts) //nolint:gosec // i < count
	if err == nil {
		return cp
	}

	var dup *ErrDuplicateFieldName
	if errors.As(err, &dup) {
		panic(fmt.Sprintf("tupledict: dictionary holds a duplicate name: %v", err))
	}

	d.opts.logger.WithFieldCount(n).Warn("dictionary copy falls back to untracked heap block", "error", err)
	fallback := *d.opts
	fallback.memory = nil
	fallback.source = grpalloc.Heap
	cp, err = build(n, func(i int) string { return nameAt(uint32(i)) }, &fallback) //nolint:gosec // i < count
	if err != nil {
		panic(fmt.Sprintf("tupledict: heap copy failed: %v", err))
	}
	return cp
}

// Len returns the number of fields.
func (d *Dictionary) Len() uint32 {
	return d.count
}

// Name returns the name of field i. The string aliases the dictionary's
// block: it is valid until the dictionary is released or its contents are
// swapped out and released.
func (d *Dictionary) Name(i uint32) string {
	r := d.names[i]
	return unsafe.String(&d.block.Bytes()[r.off], int(r.len)) //nolint:gosec // r lies within the block
}

// Names returns all field names in ordinal order, aliasing the block like Name.
func (d *Dictionary) Names() []string {
	out := make([]string, d.count)
	for i := range out {
		out[i] = d.Name(uint32(i)) //nolint:gosec // i < count
	}
	return out
}

// NameHash returns the function names in d are hashed with.
func (d *Dictionary) NameHash() namehash.Func {
	return d.opts.nameHash
}

// FieldNo returns the ordinal of the field called name. hash must equal
// d.NameHash()(name); it is trusted, not recomputed or checked.
func (d *Dictionary) FieldNo(name string, hash uint32) (uint32, bool) {
	if d.index == nil {
		return 0, false
	}
	return d.index.Find(name, hash)
}

// FieldNoBytes is FieldNo for a name held as bytes.
func (d *Dictionary) FieldNoBytes(name []byte, hash uint32) (uint32, bool) {
	if d.index == nil {
		return 0, false
	}
	return d.index.FindBytes(name, hash)
}

// HashProcess feeds every name, in ordinal order and without terminators,
// into st and returns the number of bytes fed.
func (d *Dictionary) HashProcess(st *namehash.State) uint32 {
	var size uint32
	for i := uint32(0); i < d.count; i++ {
		name := d.Name(i)
		st.ProcessString(name)
		size += uint32(len(name)) //nolint:gosec // bounded by block size
	}
	return size
}

// Size returns the size of the dictionary block in bytes.
func (d *Dictionary) Size() int {
	if d.block == nil {
		return 0
	}
	return d.block.Len()
}

// OffHeap reports whether the block lives outside the Go heap.
func (d *Dictionary) OffHeap() bool {
	return d.block != nil && d.block.OffHeap()
}

// Refs returns the current reference count.
func (d *Dictionary) Refs() int {
	return d.refs
}

// Ref adds a reference.
func (d *Dictionary) Ref() {
	d.refs++
}

// Unref drops a reference and releases the dictionary when it was the
// last one. The dictionary must not be used afterwards.
func (d *Dictionary) Unref() {
	if d.refs <= 0 {
		panic("tupledict: unref of a released dictionary")
	}
	d.refs--
	if d.refs == 0 {
		d.release()
	}
}

func (d *Dictionary) release() {
	o := d.opts
	fields := int(d.count)
	bytes := d.Size()

	var err error
	if d.block != nil {
		err = d.block.Release()
	}
	o.memory.ReleaseMemory(d.charged)
	d.payload = payload{opts: o}

	o.metrics.RecordRelease(bytes)
	o.logger.LogRelease(context.Background(), fields, bytes, err)
}

// String returns the field names, e.g. "{id, name, age}".
func (d *Dictionary) String() string {
	return "{" + strings.Join(d.Names(), ", ") + "}"
}

// Compare orders dictionaries by field count, then by names position by
// position using byte-wise comparison. It returns -1, 0 or +1.
func Compare(a, b *Dictionary) int {
	if a.count != b.count {
		if a.count > b.count {
			return 1
		}
		return -1
	}
	for i := uint32(0); i < a.count; i++ {
		if c := strings.Compare(a.Name(i), b.Name(i)); c != 0 {
			return c
		}
	}
	return 0
}

// Equal reports whether a and b hold the same names in the same order.
func Equal(a, b *Dictionary) bool {
	return Compare(a, b) == 0
}

// Swap exchanges the contents of a and b (names, index, block and options)
// while each keeps its own reference count. Afterwards every holder of a
// sees b's former names and vice versa.
//
// Neither dictionary may be accessed concurrently with Swap.
func Swap(a, b *Dictionary) {
	if a == b {
		return
	}
	a.payload, b.payload = b.payload, a.payload
	a.opts.metrics.RecordSwap()
	a.opts.logger.LogSwap(context.Background(), int(a.count), int(b.count))
}
