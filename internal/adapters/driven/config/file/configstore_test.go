package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestSetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("embedding.dimensions", 384))
	require.NoError(t, store.Set("search.min_similarity", 0.05))
	require.NoError(t, store.Set("ingest.name", "local"))
	require.NoError(t, store.Set("watch.enabled", true))

	assert.Equal(t, 384, store.GetInt("embedding.dimensions"))
	assert.InDelta(t, 0.05, store.GetFloat("search.min_similarity"), 1e-9)
	assert.Equal(t, "local", store.GetString("ingest.name"))
	assert.True(t, store.GetBool("watch.enabled"))
}

func TestGet_MissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("absent")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("absent"))
	assert.Equal(t, 0, store.GetInt("absent"))
	assert.Zero(t, store.GetFloat("absent"))
	assert.False(t, store.GetBool("absent"))
}

func TestGet_WrongTypes(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("key", "a string"))
	assert.Equal(t, 0, store.GetInt("key"))
	assert.False(t, store.GetBool("key"))

	// Integers coerce to floats.
	require.NoError(t, store.Set("count", 3))
	assert.InDelta(t, 3.0, store.GetFloat("count"), 1e-9)
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("search.top_k", 3))

	// A fresh store reads back the persisted value (TOML ints are int64).
	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, reopened.GetInt("search.top_k"))

	_, err = os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, err)
}
