package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestStoreLogin(t *testing.T) {
	store := newTestStore(t)

	token, err := store.Login("admin", "admin123")

	require.NoError(t, err)
	assert.Equal(t, "YWRtaW46YWRtaW4xMjM=", token)
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, token, store.Token())
	assert.Equal(t, "admin", store.Username())
}

func TestStoreLoginOverwritesPreviousSession(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Login("admin", "admin123")
	require.NoError(t, err)
	token, err := store.Login("user", "user123")
	require.NoError(t, err)

	assert.Equal(t, token, store.Token())
	assert.Equal(t, "user", store.Username())
}

func TestStoreLogout(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Login("admin", "admin123")
	require.NoError(t, err)

	require.NoError(t, store.Logout())

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.Empty(t, store.Username())
}

func TestStoreLogoutWithoutSession(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.Logout())
}

func TestStoreSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	_, err := NewStore(path).Login("admin", "admin123")
	require.NoError(t, err)

	reopened := NewStore(path)
	assert.True(t, reopened.IsAuthenticated())
	assert.Equal(t, "admin", reopened.Username())
}

func TestStoreCorruptFileBehavesAsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewStore(path)

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
}
