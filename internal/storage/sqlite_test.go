package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewSQLiteStore_RequiresDSN(t *testing.T) {
	store, err := NewSQLiteStore("")
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestSQLiteStore_CRUD(t *testing.T) {
	storeCRUD(t, newTestSQLiteStore(t))
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(t.Context(), newTestUser("u-1", "alice@example.com")))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	user, err := reopened.GetUserByID(t.Context(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}
