package tupleformat

import (
	"context"
	"fmt"
	"sync"

	"github.com/locker/tarantool/tupledict"
)

// Option configures a Registry.
type Option func(*Registry)

// WithDictOptions sets the options every dictionary of the registry is
// built with.
func WithDictOptions(opts ...tupledict.Option) Option {
	return func(r *Registry) {
		r.dictOpts = append(r.dictOpts, opts...)
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *tupledict.Logger) Option {
	return func(r *Registry) {
		if l == nil {
			l = tupledict.NoopLogger()
		}
		r.logger = l
	}
}

// Registry deduplicates formats by field names: registering a list of
// names that an existing format already has returns that format.
type Registry struct {
	mu       sync.RWMutex
	formats  map[uint32][]*Format
	count    int
	hits     int64
	misses   int64
	dictOpts []tupledict.Option
	logger   *tupledict.Logger
}

// RegistryStats is a snapshot of registry counters.
type RegistryStats struct {
	Formats int
	Hits    int64
	Misses  int64
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		formats: make(map[uint32][]*Format),
		logger:  tupledict.NoopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register returns the format for names with one new reference, building
// it when no registered format has exactly these names.
func (r *Registry) Register(names []string) (*Format, error) {
	d, err := tupledict.New(names, r.dictOpts...)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dg := digest(d)
	if f := r.find(dg, d); f != nil {
		d.Unref()
		f.refs++
		r.hits++
		return f, nil
	}

	f := &Format{reg: r, dict: d, digest: dg, refs: 1}
	r.insert(f)
	r.misses++
	r.logger.DebugContext(context.Background(), "format registered",
		"fields", len(names),
		"digest", dg,
	)
	return f, nil
}

// Acquire adds a reference to f.
func (r *Registry) Acquire(f *Format) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.refs <= 0 {
		panic("tupleformat: acquire of a released format")
	}
	f.refs++
}

// Release drops a reference to f. The last release unregisters the
// format and drops its dictionary reference.
func (r *Registry) Release(f *Format) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.refs <= 0 {
		panic("tupleformat: release of a released format")
	}
	f.refs--
	if f.refs > 0 {
		return
	}
	r.remove(f)
	f.dict.Unref()
	r.logger.DebugContext(context.Background(), "format released", "digest", f.digest)
}

// Alter replaces the field names of f in place. Holders of f, and of its
// dictionary, observe the new names. On error f is unchanged.
//
// Alter does not merge formats. If another registered format already has
// the new names, both stay registered: Register and Lookup keep returning
// the older one until it is released, then f.
func (r *Registry) Alter(f *Format, names []string) error {
	fresh, err := tupledict.New(names, r.dictOpts...)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if f.refs <= 0 {
		fresh.Unref()
		return fmt.Errorf("alter: %w", ErrReleased)
	}
	if tupledict.Equal(f.dict, fresh) {
		fresh.Unref()
		return nil
	}

	old := f.dict.Len()
	r.remove(f)
	tupledict.Swap(f.dict, fresh)
	// fresh now holds the stale names; nothing else references it.
	fresh.Unref()
	f.digest = digest(f.dict)
	r.insert(f)

	r.logger.InfoContext(context.Background(), "format altered",
		"old_fields", old,
		"new_fields", f.dict.Len(),
		"digest", f.digest,
	)
	return nil
}

// Lookup returns the registered format with exactly names, without taking
// a reference.
func (r *Registry) Lookup(names []string) (*Format, bool) {
	d, err := tupledict.New(names, r.dictOpts...)
	if err != nil {
		return nil, false
	}
	defer d.Unref()

	r.mu.RLock()
	defer r.mu.RUnlock()
	f := r.find(digest(d), d)
	return f, f != nil
}

// Refs returns the number of references to f.
func (r *Registry) Refs(f *Format) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return f.refs
}

// Len returns the number of registered formats.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// Stats returns a snapshot of the registry counters.
func (r *Registry) Stats() RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RegistryStats{Formats: r.count, Hits: r.hits, Misses: r.misses}
}

func (r *Registry) find(dg uint32, d *tupledict.Dictionary) *Format {
	for _, f := range r.formats[dg] {
		if tupledict.Equal(f.dict, d) {
			return f
		}
	}
	return nil
}

func (r *Registry) insert(f *Format) {
	r.formats[f.digest] = append(r.formats[f.digest], f)
	r.count++
}

func (r *Registry) remove(f *Format) {
	bucket := r.formats[f.digest]
	for i, g := range bucket {
		if g != f {
			continue
		}
		bucket = append(bucket[:i], bucket[i+1:]...)
		if len(bucket) == 0 {
			delete(r.formats, f.digest)
		} else {
			r.formats[f.digest] = bucket
		}
		r.count--
		return
	}
}
