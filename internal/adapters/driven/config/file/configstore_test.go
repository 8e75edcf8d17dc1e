package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("sync.verbose", true))
	require.NoError(t, store.Set("credentials.src-1.token", "secret"))

	assert.True(t, store.GetBool("sync.verbose"))
	assert.Equal(t, "secret", store.GetString("credentials.src-1.token"))

	// A fresh store over the same directory sees the persisted values.
	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.True(t, reloaded.GetBool("sync.verbose"))
	assert.Equal(t, "secret", reloaded.GetString("credentials.src-1.token"))
}

func TestConfigStoreDelete(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("credentials.src-1.token", "secret"))
	require.NoError(t, store.Delete("credentials.src-1.token"))
	assert.Equal(t, "", store.GetString("credentials.src-1.token"))

	// Deleting an absent key is a no-op.
	require.NoError(t, store.Delete("credentials.never-existed"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	_, ok := reloaded.Get("credentials.src-1.token")
	assert.False(t, ok)
}

func TestConfigStoreMissingValueDefaults(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", store.GetString("nope"))
	assert.False(t, store.GetBool("nope"))

	require.NoError(t, store.Set("numeric", int64(3)))
	assert.Equal(t, "", store.GetString("numeric"))
	assert.False(t, store.GetBool("numeric"))
}

func TestConfigStoreFilePermissions(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("credentials.src-1.token", "secret"))

	info, err := os.Stat(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
