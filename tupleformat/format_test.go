package tupleformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locker/tarantool/namehash"
	"github.com/locker/tarantool/tupledict"
)

func TestFormat_Lookup(t *testing.T) {
	r := NewRegistry()
	f, err := r.Register([]string{"id", "name", "age"})
	require.NoError(t, err)
	defer r.Release(f)

	key := f.Key("age")
	assert.Equal(t, NewFieldKey(namehash.Default, "age"), key)

	no, ok := f.FieldNo(key)
	require.True(t, ok)
	assert.Equal(t, uint32(2), no)

	no, ok = f.FieldNoByName("name")
	require.True(t, ok)
	assert.Equal(t, uint32(1), no)

	_, ok = f.FieldNoByName("missing")
	assert.False(t, ok)

	assert.Equal(t, uint32(3), f.FieldCount())
	assert.Equal(t, "id", f.FieldName(0))
	assert.Equal(t, []string{"id", "name", "age"}, f.Names())
	assert.Equal(t, "{id, name, age}", f.String())
	assert.Same(t, f.dict, f.Dict())
}

func TestFormat_Project(t *testing.T) {
	r := NewRegistry()
	f, err := r.Register([]string{"id", "name", "age", "email"})
	require.NoError(t, err)
	defer r.Release(f)

	bm, err := f.ProjectNames("email", "id", "email")
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 3}, bm.ToArray())

	empty, err := f.Project()
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	_, err = f.ProjectNames("id", "nope")
	assert.ErrorIs(t, err, ErrFieldNotFound)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestFormat_CustomHash(t *testing.T) {
	r := NewRegistry(WithDictOptions(tupledict.WithNameHash(namehash.XXHash)))
	f, err := r.Register([]string{"a", "b"})
	require.NoError(t, err)
	defer r.Release(f)

	assert.Equal(t, namehash.XXHash("b"), f.Key("b").Hash)
	no, ok := f.FieldNo(NewFieldKey(namehash.XXHash, "b"))
	require.True(t, ok)
	assert.Equal(t, uint32(1), no)
}

func TestDigest(t *testing.T) {
	build := func(names ...string) *tupledict.Dictionary {
		d, err := tupledict.New(names)
		require.NoError(t, err)
		t.Cleanup(d.Unref)
		return d
	}

	assert.Equal(t, digest(build("id", "name")), digest(build("id", "name")))
	assert.NotEqual(t, digest(build("id", "name")), digest(build("name", "id")))
	assert.NotEqual(t, digest(build("ab")), digest(build("a", "b")))
}
