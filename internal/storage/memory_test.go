package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saiful-70/ai-rate-limiter/internal/models"
)

func newTestUser(id, email string) *models.User {
	return &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: "$2a$10$fakehash",
		Tier:         models.TierFree,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

// storeCRUD exercises the Store contract shared by all backends.
func storeCRUD(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	user := newTestUser("u-1", "alice@example.com")
	require.NoError(t, store.CreateUser(ctx, user))

	// Duplicate email is rejected with the sentinel.
	dup := newTestUser("u-2", "alice@example.com")
	assert.ErrorIs(t, store.CreateUser(ctx, dup), ErrAlreadyExists)

	byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", byEmail.ID)
	assert.Equal(t, models.TierFree, byEmail.Tier)

	byID, err := store.GetUserByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	_, err = store.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetUserByID(ctx, "u-missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.UpdateUserTier(ctx, "u-1", models.TierPremium))
	updated, err := store.GetUserByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, models.TierPremium, updated.Tier)

	assert.ErrorIs(t, store.UpdateUserTier(ctx, "u-missing", models.TierPremium), ErrNotFound)

	assert.NoError(t, store.Ping(ctx))
}

func TestMemoryStore_CRUD(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	storeCRUD(t, store)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, newTestUser("u-1", "alice@example.com")))

	first, err := store.GetUserByID(ctx, "u-1")
	require.NoError(t, err)
	first.Tier = "mutated"

	second, err := store.GetUserByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, models.TierFree, second.Tier, "mutating a returned user must not affect the store")
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("u-%d", i)
			email := fmt.Sprintf("user%d@example.com", i)
			_ = store.CreateUser(ctx, newTestUser(id, email))
			_, _ = store.GetUserByEmail(ctx, email)
			_ = store.UpdateUserTier(ctx, id, models.TierPremium)
		}(i)
	}
	wg.Wait()

	user, err := store.GetUserByID(ctx, "u-7")
	require.NoError(t, err)
	assert.Equal(t, models.TierPremium, user.Tier)
}
