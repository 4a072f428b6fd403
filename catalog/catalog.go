package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/locker/tarantool/blobstore"
	"github.com/locker/tarantool/resource"
	"github.com/locker/tarantool/tupleformat"
)

// Catalog stores schemas in a blob store and registers loaded schemas
// with a format registry.
type Catalog struct {
	store    blobstore.Store
	registry *tupleformat.Registry
	opts     options
}

// New creates a catalog over store. Loaded formats are registered with
// registry.
func New(store blobstore.Store, registry *tupleformat.Registry, opts ...Option) *Catalog {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Catalog{store: store, registry: registry, opts: o}
}

func (c *Catalog) key(name string) string {
	return c.opts.prefix + name
}

// Save stores the field names of f as schema name, replacing any stored
// version.
func (c *Catalog) Save(ctx context.Context, name string, f *tupleformat.Format) error {
	return c.SaveNames(ctx, name, f.Names())
}

// SaveNames stores fields as schema name.
func (c *Catalog) SaveNames(ctx context.Context, name string, fields []string) error {
	if name == "" {
		return errors.New("catalog: empty schema name")
	}
	start := time.Now()

	var buf bytes.Buffer
	w := resource.NewRateLimitedWriter(ctx, &buf, c.opts.resources)
	if err := encodeBlob(w, record{Name: name, Fields: fields}, c.opts.codec, c.opts.compression); err != nil {
		return err
	}
	if err := c.store.Put(ctx, c.key(name), buf.Bytes()); err != nil {
		return fmt.Errorf("catalog: save %q: %w", name, err)
	}

	c.opts.logger.WithSchema(name).DebugContext(ctx, "schema saved",
		"fields", len(fields),
		"bytes", buf.Len(),
		"codec", c.opts.codec.Name(),
		"compression", c.opts.compression.String(),
		"duration", time.Since(start),
	)
	return nil
}

// Fields reads the field names stored as schema name.
func (c *Catalog) Fields(ctx context.Context, name string) ([]string, error) {
	rec, err := c.read(ctx, name)
	if err != nil {
		return nil, err
	}
	return rec.Fields, nil
}

func (c *Catalog) read(ctx context.Context, name string) (record, error) {
	blob, err := c.store.Open(ctx, c.key(name))
	if err != nil {
		return record{}, fmt.Errorf("catalog: open %q: %w", name, err)
	}
	defer blob.Close()

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return record{}, fmt.Errorf("catalog: read %q: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(resource.NewRateLimitedReader(ctx, rc, c.opts.resources))
	if err != nil {
		return record{}, fmt.Errorf("catalog: read %q: %w", name, err)
	}

	rec, err := decodeBlob(data)
	if err != nil {
		return record{}, fmt.Errorf("schema %q: %w", name, err)
	}
	if rec.Name != name {
		return record{}, fmt.Errorf("schema %q: %w: blob holds schema %q", name, ErrCorrupt, rec.Name)
	}
	return rec, nil
}

// Load reads schema name and registers it. The returned format carries a
// reference the caller must release through the registry.
func (c *Catalog) Load(ctx context.Context, name string) (*tupleformat.Format, error) {
	rec, err := c.read(ctx, name)
	if err != nil {
		return nil, err
	}
	f, err := c.registry.Register(rec.Fields)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", name, err)
	}
	c.opts.logger.WithSchema(name).DebugContext(ctx, "schema loaded", "fields", len(rec.Fields))
	return f, nil
}

// Reload reads schema name and alters f to its stored field names.
func (c *Catalog) Reload(ctx context.Context, name string, f *tupleformat.Format) error {
	rec, err := c.read(ctx, name)
	if err != nil {
		return err
	}
	if err := c.registry.Alter(f, rec.Fields); err != nil {
		return fmt.Errorf("schema %q: %w", name, err)
	}
	c.opts.logger.WithSchema(name).InfoContext(ctx, "schema reloaded", "fields", len(rec.Fields))
	return nil
}

// Delete removes schema name. Deleting a missing schema is not an error.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	if err := c.store.Delete(ctx, c.key(name)); err != nil {
		return fmt.Errorf("catalog: delete %q: %w", name, err)
	}
	return nil
}

// List returns the sorted names of all stored schemas.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	keys, err := c.store.List(ctx, c.opts.prefix)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, c.opts.prefix))
	}
	return names, nil
}

// SaveAll saves every format of formats concurrently, bounded by the
// resource controller's background slots.
func (c *Catalog) SaveAll(ctx context.Context, formats map[string]*tupleformat.Format) error {
	// Snapshot names before any goroutine starts.
	fields := make(map[string][]string, len(formats))
	for name, f := range formats {
		fields[name] = f.Names()
	}

	g, ctx := errgroup.WithContext(ctx)
	for name, names := range fields {
		g.Go(func() error {
			if err := c.opts.resources.AcquireBackground(ctx); err != nil {
				return err
			}
			defer c.opts.resources.ReleaseBackground()
			return c.SaveNames(ctx, name, names)
		})
	}
	return g.Wait()
}

// LoadAll loads names concurrently. On error every format loaded so far
// is released and nothing is returned.
func (c *Catalog) LoadAll(ctx context.Context, names []string) (map[string]*tupleformat.Format, error) {
	var (
		mu  sync.Mutex
		out = make(map[string]*tupleformat.Format, len(names))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		g.Go(func() error {
			if err := c.opts.resources.AcquireBackground(gctx); err != nil {
				return err
			}
			defer c.opts.resources.ReleaseBackground()

			rec, err := c.read(gctx, name)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			if _, dup := out[name]; dup {
				return nil
			}
			f, err := c.registry.Register(rec.Fields)
			if err != nil {
				return fmt.Errorf("schema %q: %w", name, err)
			}
			out[name] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, f := range out {
			c.registry.Release(f)
		}
		return nil, err
	}
	c.opts.logger.DebugContext(ctx, "schemas loaded", "count", len(out))
	return out, nil
}
