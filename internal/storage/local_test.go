package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shopapi/internal/models"
	"shopapi/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutExistsDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := storage.NewLocalStore(root)
	require.NoError(t, err)

	upload := &models.Upload{Filename: "Photo.JPG", Data: []byte("fake image bytes")}
	path, err := store.Put(ctx, "images", upload)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "images/"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))

	onDisk, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Equal(t, upload.Data, onDisk)

	ok, err := store.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, path))
	ok, err = store.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, path))
}

func TestLocalStore_GeneratesDistinctPaths(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	upload := &models.Upload{Filename: "a.png", Data: []byte{1}}
	first, err := store.Put(context.Background(), "images", upload)
	require.NoError(t, err)
	second, err := store.Put(context.Background(), "images", upload)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{"../etc/passwd", "/etc/passwd", "images/../../x", ""} {
		err := store.Delete(context.Background(), p)
		assert.ErrorIs(t, err, storage.ErrInvalidPath, p)
	}
}
