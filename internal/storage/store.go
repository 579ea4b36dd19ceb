// Package storage provides user account persistence and retrieval. It
// offers a clean abstraction implemented by in-memory, SQLite and PostgreSQL
// backends. Note that rate limit counters are NOT stored here: the admission
// engine is deliberately in-memory only and owns its own state.
package storage

import (
	"context"
	"errors"

	"github.com/saiful-70/ai-rate-limiter/internal/models"
)

// Sentinel errors returned by all backends.
var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrAlreadyExists is returned when creating a user with a taken email.
	ErrAlreadyExists = errors.New("user already exists")
)

// Store defines the interface for user persistence.
type Store interface {
	// CreateUser stores a new user. Returns ErrAlreadyExists if the email
	// is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by normalized email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by id.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// UpdateUserTier changes a user's subscription tier.
	UpdateUserTier(ctx context.Context, id, tier string) error

	// Ping verifies the backend is reachable, for health checks.
	Ping(ctx context.Context) error

	// Close closes the storage connection and cleans up resources.
	Close() error
}
