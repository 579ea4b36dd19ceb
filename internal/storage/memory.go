package storage

import (
	"context"
	"sync"

	"github.com/saiful-70/ai-rate-limiter/internal/models"
)

// MemoryStore implements the Store interface using in-memory maps. This
// backend is ideal for development and testing; data is lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string // email -> ID
}

// NewMemoryStore creates a new memory-based store instance.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

// CreateUser stores a new user.
func (m *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[user.Email]; exists {
		return ErrAlreadyExists
	}

	// Store a copy to prevent external modification
	userCopy := *user
	m.byID[user.ID] = &userCopy
	m.byEmail[user.Email] = user.ID
	return nil
}

// GetUserByEmail retrieves a user by normalized email address.
func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, exists := m.byEmail[email]
	if !exists {
		return nil, ErrNotFound
	}
	userCopy := *m.byID[id]
	return &userCopy, nil
}

// GetUserByID retrieves a user by id.
func (m *MemoryStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.byID[id]
	if !exists {
		return nil, ErrNotFound
	}
	userCopy := *user
	return &userCopy, nil
}

// UpdateUserTier changes a user's subscription tier.
func (m *MemoryStore) UpdateUserTier(ctx context.Context, id, tier string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.byID[id]
	if !exists {
		return ErrNotFound
	}
	user.Tier = tier
	return nil
}

// Ping always succeeds for the memory backend.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close releases resources (a no-op for the memory backend).
func (m *MemoryStore) Close() error {
	return nil
}
