package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	st, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return st
}

func TestLocalStorage_WriteAndExists(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, st.Write(ctx, "image/TheMatrixCover.png", []byte("png-bytes"), "image/png"))

	exists, err := st.Exists(ctx, "image/TheMatrixCover.png")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = st.Exists(ctx, "image/MissingCover.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_WriteOverwrites(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, st.Write(ctx, "image/a.png", []byte("first"), "image/png"))
	require.NoError(t, st.Write(ctx, "image/a.png", []byte("second"), "image/png"))

	content, err := os.ReadFile(filepath.Join(st.root, "image", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestLocalStorage_WriteLeavesNoTempFile(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, st.Write(ctx, "image/a.png", []byte("data"), "image/png"))

	objects, err := st.List(ctx, "image/")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "image/a.png", objects[0].Key)
}

func TestLocalStorage_RemoveIsIdempotent(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, st.Write(ctx, "image/a.png", []byte("data"), "image/png"))
	require.NoError(t, st.Remove(ctx, "image/a.png"))

	exists, err := st.Exists(ctx, "image/a.png")
	require.NoError(t, err)
	assert.False(t, exists)

	// Second removal of the same key is not an error.
	require.NoError(t, st.Remove(ctx, "image/a.png"))
}

func TestLocalStorage_ListFiltersByPrefix(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, st.Write(ctx, "image/a.png", []byte("a"), "image/png"))
	require.NoError(t, st.Write(ctx, "image/b.jpg", []byte("b"), "image/jpeg"))
	require.NoError(t, st.Write(ctx, "other/c.txt", []byte("c"), "text/plain"))

	objects, err := st.List(ctx, "image/")
	require.NoError(t, err)

	keys := make([]string, len(objects))
	for i, obj := range objects {
		keys[i] = obj.Key
	}
	assert.ElementsMatch(t, []string{"image/a.png", "image/b.jpg"}, keys)
}

func TestLocalStorage_ListEmptyRoot(t *testing.T) {
	st := newTestStorage(t)

	objects, err := st.List(context.Background(), "image/")
	require.NoError(t, err)
	assert.Empty(t, objects)
}
