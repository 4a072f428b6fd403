package tupledict

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locker/tarantool/namehash"
	"github.com/locker/tarantool/resource"
)

func fieldNo(d *Dictionary, name string) (uint32, bool) {
	return d.FieldNo(name, d.NameHash()(name))
}

func mustNew(t *testing.T, names []string, opts ...Option) *Dictionary {
	t.Helper()
	d, err := New(names, opts...)
	require.NoError(t, err)
	return d
}

func TestNew(t *testing.T) {
	d := mustNew(t, []string{"id", "name", "age"})
	defer d.Unref()

	assert.Equal(t, uint32(3), d.Len())
	assert.Equal(t, 1, d.Refs())

	no, ok := fieldNo(d, "name")
	require.True(t, ok)
	assert.Equal(t, uint32(1), no)

	_, ok = fieldNo(d, "missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"id", "name", "age"}, d.Names())
	assert.Equal(t, "{id, name, age}", d.String())
}

func TestNew_Bijective(t *testing.T) {
	lists := map[string][]string{
		"single":     {"only"},
		"empty name": {"", "x"},
		"prefixes":   {"a", "ab", "abc", "abcd", "abcde"},
		"unicode":    {"имя", "名前", "name"},
	}
	many := make([]string, 500)
	for i := range many {
		many[i] = fmt.Sprintf("column_%d", i)
	}
	lists["many"] = many

	for name, names := range lists {
		t.Run(name, func(t *testing.T) {
			d := mustNew(t, names)
			defer d.Unref()

			require.Equal(t, uint32(len(names)), d.Len())
			for i, n := range names {
				assert.Equal(t, n, d.Name(uint32(i)))
				got, ok := fieldNo(d, n)
				require.True(t, ok, n)
				assert.Equal(t, uint32(i), got)
			}
		})
	}
}

func TestNew_NamesAreCopied(t *testing.T) {
	buf := []byte("name")
	names := []string{string(buf)}
	d := mustNew(t, names)
	defer d.Unref()

	names[0] = "other"
	assert.Equal(t, "name", d.Name(0))
}

func TestNew_Duplicate(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	rc := resource.NewController(resource.Config{})

	d, err := New([]string{"id", "id"}, WithMetricsCollector(metrics), WithMemoryController(rc))
	require.Error(t, err)
	assert.Nil(t, d)

	var dup *ErrDuplicateFieldName
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "id", dup.Name)
	assert.ErrorIs(t, err, ErrDuplicateField)
	assert.Equal(t, "space field 'id' is duplicate", err.Error())

	assert.Equal(t, int64(0), rc.MemoryUsage(), "failed build must return its memory")
	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BuildErrors)
	assert.Equal(t, int64(0), stats.LiveBytes())
}

func TestNew_DuplicateReportsFirstRepeat(t *testing.T) {
	_, err := New([]string{"a", "b", "c", "b", "a"})
	var dup *ErrDuplicateFieldName
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "b", dup.Name)
}

func TestNew_DuplicateOffHeap(t *testing.T) {
	_, err := New([]string{"x", "y", "x"}, WithOffHeap())
	assert.ErrorIs(t, err, ErrDuplicateField)
}

func TestNew_Empty(t *testing.T) {
	for _, names := range [][]string{nil, {}} {
		d := mustNew(t, names)

		assert.Equal(t, uint32(0), d.Len())
		assert.Equal(t, 0, d.Size())
		assert.False(t, d.OffHeap())
		assert.Empty(t, d.Names())
		_, ok := fieldNo(d, "anything")
		assert.False(t, ok)
		_, ok = d.FieldNoBytes([]byte(""), namehash.Default(""))
		assert.False(t, ok)
		assert.Equal(t, "{}", d.String())

		d.Unref()
	}
}

type fieldDef struct {
	Name     string
	Type     string
	Nullable bool
}

func TestNewFrom(t *testing.T) {
	defs := []fieldDef{
		{Name: "id", Type: "unsigned"},
		{Name: "email", Type: "string", Nullable: true},
	}
	d, err := NewFrom(defs, func(f *fieldDef) string { return f.Name })
	require.NoError(t, err)
	defer d.Unref()

	assert.Equal(t, []string{"id", "email"}, d.Names())

	_, err = NewFrom([]fieldDef{{Name: "a"}, {Name: "a"}}, func(f *fieldDef) string { return f.Name })
	assert.ErrorIs(t, err, ErrDuplicateField)
}

func TestFieldNoBytes(t *testing.T) {
	d := mustNew(t, []string{"id", "name"})
	defer d.Unref()

	key := []byte("name")
	no, ok := d.FieldNoBytes(key, d.NameHash().Bytes(key))
	require.True(t, ok)
	assert.Equal(t, uint32(1), no)
}

func TestWithNameHash(t *testing.T) {
	d := mustNew(t, []string{"id", "name"}, WithNameHash(namehash.XXHash))
	defer d.Unref()

	no, ok := d.FieldNo("name", namehash.XXHash("name"))
	require.True(t, ok)
	assert.Equal(t, uint32(1), no)

	nilHash := mustNew(t, []string{"id"}, WithNameHash(nil))
	defer nilHash.Unref()
	_, ok = nilHash.FieldNo("id", namehash.Default("id"))
	assert.True(t, ok)
}

func TestDup(t *testing.T) {
	d := mustNew(t, []string{"id", "name", "age"})
	defer d.Unref()
	d.Ref()
	defer d.Unref()

	cp := d.Dup()
	assert.Equal(t, 1, cp.Refs())
	assert.Equal(t, 0, Compare(d, cp))
	assert.True(t, Equal(d, cp))
	assert.Equal(t, d.Size(), cp.Size())
	assert.NotSame(t, &d.block.Bytes()[0], &cp.block.Bytes()[0])

	// Replacing the copy's contents leaves the source untouched.
	other := mustNew(t, []string{"x"})
	Swap(cp, other)
	assert.Equal(t, []string{"id", "name", "age"}, d.Names())
	assert.Equal(t, []string{"x"}, cp.Names())

	// Releasing the copy leaves the source usable.
	cp.Unref()
	other.Unref()
	no, ok := fieldNo(d, "age")
	require.True(t, ok)
	assert.Equal(t, uint32(2), no)
}

func TestDup_Empty(t *testing.T) {
	d := mustNew(t, nil)
	defer d.Unref()

	cp := d.Dup()
	defer cp.Unref()
	assert.Equal(t, uint32(0), cp.Len())
	assert.True(t, Equal(d, cp))
}

func TestDup_KeepsOptions(t *testing.T) {
	d := mustNew(t, []string{"a", "b"}, WithOffHeap(), WithNameHash(namehash.XXHash))
	defer d.Unref()

	cp := d.Dup()
	defer cp.Unref()
	assert.True(t, cp.OffHeap())
	_, ok := cp.FieldNo("b", namehash.XXHash("b"))
	assert.True(t, ok)
}

func TestCompare(t *testing.T) {
	short := mustNew(t, []string{"zzz"})
	ab := mustNew(t, []string{"a", "b"})
	ac := mustNew(t, []string{"a", "c"})
	ac2 := mustNew(t, []string{"a", "c"})
	empty := mustNew(t, nil)
	all := []*Dictionary{empty, short, ab, ac, ac2}
	defer func() {
		for _, d := range all {
			d.Unref()
		}
	}()

	assert.Equal(t, -1, Compare(short, ab), "fewer fields order first")
	assert.Equal(t, 1, Compare(ab, short))
	assert.Equal(t, -1, Compare(ab, ac))
	assert.Equal(t, 1, Compare(ac, ab))
	assert.Equal(t, 0, Compare(ac, ac2))
	assert.Equal(t, -1, Compare(empty, short))

	for _, a := range all {
		assert.Equal(t, 0, Compare(a, a), "reflexive")
		for _, b := range all {
			assert.Equal(t, -Compare(b, a), Compare(a, b), "antisymmetric")
			for _, c := range all {
				if Compare(a, b) <= 0 && Compare(b, c) <= 0 {
					assert.LessOrEqual(t, Compare(a, c), 0, "transitive")
				}
			}
		}
	}
}

func TestHashProcess(t *testing.T) {
	d := mustNew(t, []string{"id", "name", "age"})
	defer d.Unref()

	st := namehash.NewState(namehash.DefaultSeed)
	size := d.HashProcess(&st)
	assert.Equal(t, uint32(len("idnameage")), size)
	assert.Equal(t, namehash.Sum32(namehash.DefaultSeed, []byte("idnameage")), st.Sum(size))

	// Folding continues an existing running state.
	st2 := namehash.NewState(namehash.DefaultSeed)
	st2.ProcessString("prefix")
	size2 := d.HashProcess(&st2)
	assert.Equal(t, namehash.Sum32(namehash.DefaultSeed, []byte("prefixidnameage")), st2.Sum(6+size2))

	empty := mustNew(t, nil)
	defer empty.Unref()
	st3 := namehash.NewState(1)
	assert.Equal(t, uint32(0), empty.HashProcess(&st3))
	assert.Equal(t, namehash.NewState(1), st3)
}

func TestHashProcess_OrderSensitive(t *testing.T) {
	perms := [][]string{
		{"id", "name", "age"},
		{"name", "id", "age"},
		{"age", "name", "id"},
	}
	seen := map[uint32][]string{}
	for _, names := range perms {
		d := mustNew(t, names)
		st := namehash.NewState(namehash.DefaultSeed)
		digest := st.Sum(d.HashProcess(&st))
		d.Unref()

		prev, dup := seen[digest]
		assert.False(t, dup, "%v and %v hash alike", prev, names)
		seen[digest] = names
	}
}

func TestSwap(t *testing.T) {
	a := mustNew(t, []string{"id", "name"})
	b := mustNew(t, []string{"x", "y", "z"})
	a.Ref()
	a.Ref()

	Swap(a, b)
	assert.Equal(t, 3, a.Refs(), "refs stay with the handle")
	assert.Equal(t, 1, b.Refs())
	assert.Equal(t, []string{"x", "y", "z"}, a.Names())
	assert.Equal(t, []string{"id", "name"}, b.Names())

	no, ok := fieldNo(a, "z")
	require.True(t, ok)
	assert.Equal(t, uint32(2), no)
	_, ok = fieldNo(a, "id")
	assert.False(t, ok)

	// Involution.
	Swap(a, b)
	assert.Equal(t, []string{"id", "name"}, a.Names())
	assert.Equal(t, []string{"x", "y", "z"}, b.Names())
	assert.Equal(t, 3, a.Refs())
	assert.Equal(t, 1, b.Refs())

	// Self swap is a no-op.
	Swap(a, a)
	assert.Equal(t, []string{"id", "name"}, a.Names())

	a.Unref()
	a.Unref()
	a.Unref()
	b.Unref()
}

func TestSwap_HotReload(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	rc := resource.NewController(resource.Config{})
	opts := []Option{WithMetricsCollector(metrics), WithMemoryController(rc)}

	shared := mustNew(t, []string{"id", "name"}, opts...)
	oldSize := shared.Size()

	// Three consumers hold the dictionary.
	holders := []*Dictionary{shared, shared, shared}
	shared.Ref()
	shared.Ref()

	fresh := mustNew(t, []string{"id", "name", "email"}, opts...)
	Swap(shared, fresh)
	fresh.Unref()

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.SwapCount)
	assert.Equal(t, int64(1), stats.ReleaseCount, "stale contents released with the stale handle")
	assert.Equal(t, int64(oldSize), stats.BytesReleased)
	assert.Equal(t, int64(shared.Size()), rc.MemoryUsage())

	for _, h := range holders {
		no, ok := fieldNo(h, "email")
		require.True(t, ok)
		assert.Equal(t, uint32(2), no)
	}
	assert.Equal(t, 3, shared.Refs())

	for range holders {
		shared.Unref()
	}
	assert.Equal(t, int64(0), rc.MemoryUsage())
	assert.Equal(t, int64(0), metrics.GetStats().LiveBytes())
}

func TestRefUnref_ReleasedExactlyOnce(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		t.Run(fmt.Sprintf("refs=%d", n), func(t *testing.T) {
			metrics := &BasicMetricsCollector{}
			d := mustNew(t, []string{"id", "name"}, WithMetricsCollector(metrics))

			for i := 0; i < n; i++ {
				d.Ref()
			}
			assert.Equal(t, n+1, d.Refs())

			for i := 0; i < n; i++ {
				d.Unref()
				assert.Equal(t, int64(0), metrics.GetStats().ReleaseCount)
			}
			d.Unref()
			assert.Equal(t, int64(1), metrics.GetStats().ReleaseCount)
			assert.Equal(t, 0, d.Refs())

			assert.Panics(t, func() { d.Unref() })
			assert.Equal(t, int64(1), metrics.GetStats().ReleaseCount)
		})
	}
}

func TestOffHeap(t *testing.T) {
	names := []string{"id", "name", "age", "email"}
	d := mustNew(t, names, WithOffHeap())

	assert.True(t, d.OffHeap())
	assert.Equal(t, names, d.Names())
	for i, n := range names {
		got, ok := fieldNo(d, n)
		require.True(t, ok)
		assert.Equal(t, uint32(i), got)
	}
	d.Unref()
	assert.Equal(t, 0, d.Size())
}

func TestMemoryController(t *testing.T) {
	rc := resource.NewController(resource.Config{})
	d := mustNew(t, []string{"id", "name"}, WithMemoryController(rc))
	assert.Equal(t, int64(d.Size()), rc.MemoryUsage())

	cp := d.Dup()
	assert.Equal(t, int64(d.Size()+cp.Size()), rc.MemoryUsage())

	cp.Unref()
	d.Unref()
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestMemoryController_Limit(t *testing.T) {
	sizing := mustNew(t, []string{"id", "name"})
	size := sizing.Size()
	sizing.Unref()

	rc := resource.NewController(resource.Config{MemoryLimitBytes: int64(size)})
	d := mustNew(t, []string{"id", "name"}, WithMemoryController(rc))

	_, err := New([]string{"other"}, WithMemoryController(rc))
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)

	// Dup never fails; the copy is simply not charged.
	cp := d.Dup()
	assert.True(t, Equal(d, cp))
	assert.Equal(t, int64(size), rc.MemoryUsage())
	cp.Unref()
	assert.Equal(t, int64(size), rc.MemoryUsage())

	d.Unref()
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func BenchmarkFieldNo(b *testing.B) {
	names := make([]string, 32)
	for i := range names {
		names[i] = fmt.Sprintf("field_%02d", i)
	}
	d, err := New(names)
	if err != nil {
		b.Fatal(err)
	}
	defer d.Unref()

	key := "field_17"
	h := d.NameHash()(key)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = d.FieldNo(key, h)
	}
}

func BenchmarkNew(b *testing.B) {
	names := make([]string, 32)
	for i := range names {
		names[i] = fmt.Sprintf("field_%02d", i)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		d, err := New(names)
		if err != nil {
			b.Fatal(err)
		}
		d.Unref()
	}
}
