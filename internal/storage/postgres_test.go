package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saiful-70/ai-rate-limiter/internal/models"
)

func getPostgresDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set, skipping PostgreSQL tests")
	}
	return dsn
}

func newPostgresTestStore(t *testing.T) *PostgresStore {
	t.Helper()
	store, err := NewPostgresStore(context.Background(), models.DatabaseConfig{
		DSN:          getPostgresDSN(t),
		MaxOpenConns: 5,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = store.pool.Exec(context.Background(), "DELETE FROM users")
		store.Close()
	})
	return store
}

func TestNewPostgresStore_RequiresDSN(t *testing.T) {
	store, err := NewPostgresStore(context.Background(), models.DatabaseConfig{})
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestPostgresStore_CRUD(t *testing.T) {
	storeCRUD(t, newPostgresTestStore(t))
}
