package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte("hello memory")
	require.NoError(t, store.Put(ctx, "b", data))
	require.NoError(t, store.Put(ctx, "a", []byte("first")))

	// Put copies its input.
	data[0] = 'J'

	blob, err := store.Open(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(12), blob.Size())

	buf := make([]byte, 6)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	assert.Equal(t, "memory", string(buf[:n]))

	n, err = blob.ReadAt(ctx, buf, 10)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "ry", string(buf[:n]))

	rc, err := blob.ReadRange(ctx, 0, 100)
	require.NoError(t, err)
	all, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello memory", string(all))
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	require.NoError(t, store.Delete(ctx, "b"))
	_, err = store.Open(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ReadAll(ctx, store, "b")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := ReadAll(ctx, store, "a")
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))
}

func TestClip(t *testing.T) {
	tests := []struct {
		size, off, length int64
		start, end        int64
	}{
		{10, 0, 10, 0, 10},
		{10, 2, 3, 2, 5},
		{10, 8, 5, 8, 10},
		{10, 12, 5, 10, 10},
		{10, -1, 2, 0, 2},
		{10, 3, -1, 3, 10},
	}
	for _, tt := range tests {
		start, end := clip(tt.size, tt.off, tt.length)
		assert.Equal(t, tt.start, start)
		assert.Equal(t, tt.end, end)
	}
}
