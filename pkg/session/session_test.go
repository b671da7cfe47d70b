package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.False(t, HasToken(store))

	require.NoError(t, store.Save("tok-123", "alice"))
	require.Equal(t, "tok-123", store.Token())
	require.Equal(t, "alice", store.Username())
	require.True(t, HasToken(store))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A fresh store sees the persisted state.
	reloaded, err := NewFileStore(path)
	require.NoError(t, err)
	require.Equal(t, "tok-123", reloaded.Token())
	require.Equal(t, "alice", reloaded.Username())
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save("tok", "bob"))
	require.NoError(t, store.Clear())
	require.False(t, HasToken(store))

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	// Clearing an already-cleared session is fine.
	require.NoError(t, store.Clear())
}

func TestFileStoreCorruptFileMeansSignedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.False(t, HasToken(store))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	require.False(t, HasToken(store))
	require.NoError(t, store.Save("t", "u"))
	require.True(t, HasToken(store))
	require.NoError(t, store.Clear())
	require.Empty(t, store.Token())
	require.Empty(t, store.Username())
}

func TestHasTokenNilProvider(t *testing.T) {
	require.False(t, HasToken(nil))
}
