package assetstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempImage(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestStoreIngredientImageIsContentAddressed(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "images"))
	require.NoError(t, err)

	src := writeTempImage(t, "picked.png", []byte("png-bytes"))
	stored, err := store.StoreIngredientImage(7, src)
	require.NoError(t, err)

	assert.FileExists(t, stored)
	assert.Equal(t, filepath.Join(store.Root(), "ingredients", "7"), filepath.Dir(stored))
	assert.Equal(t, ".png", filepath.Ext(stored))

	// Same content stores under the same name.
	again, err := store.StoreIngredientImage(7, src)
	require.NoError(t, err)
	assert.Equal(t, stored, again)

	// Different content gets a different name.
	other := writeTempImage(t, "other.png", []byte("different-bytes"))
	otherStored, err := store.StoreIngredientImage(7, other)
	require.NoError(t, err)
	assert.NotEqual(t, stored, otherStored)
}

func TestStoreRecipeImageKeepsFixedName(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "images"))
	require.NoError(t, err)

	first := writeTempImage(t, "a.jpg", []byte("first"))
	stored, err := store.StoreRecipeImage(3, first)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Root(), "recipes", "3", "img.jpg"), stored)

	// A new image for the same recipe overwrites in place.
	second := writeTempImage(t, "b.jpg", []byte("second"))
	storedAgain, err := store.StoreRecipeImage(3, second)
	require.NoError(t, err)
	assert.Equal(t, stored, storedAgain)

	content, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), content)
}

func TestStoreFailsOnMissingSource(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "images"))
	require.NoError(t, err)

	_, err = store.StoreIngredientImage(1, filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "images"))
	require.NoError(t, err)

	src := writeTempImage(t, "picked.png", []byte("png-bytes"))
	stored, err := store.StoreIngredientImage(1, src)
	require.NoError(t, err)

	require.NoError(t, store.Remove(stored))
	assert.NoFileExists(t, stored)
	// The emptied entity directory is cleaned up too.
	assert.NoDirExists(t, filepath.Dir(stored))

	// Removing an already-gone file is fine.
	assert.NoError(t, store.Remove(stored))
	assert.NoError(t, store.Remove(""))
}

func TestNewIsIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "images")
	_, err := New(root)
	require.NoError(t, err)
	_, err = New(root)
	assert.NoError(t, err)
}
