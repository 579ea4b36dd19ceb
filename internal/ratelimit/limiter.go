// Package ratelimit provides fixed-window request admission by subscription
// tier. Each tracking key (authenticated user or client IP) gets a counter
// that hard-resets at window boundaries. It includes HTTP middleware that
// sets standard rate limit response headers.
package ratelimit

import (
	"context"
	"time"
)

// Identity is a resolved caller identity. A nil *Identity means the request
// is anonymous (guest).
type Identity struct {
	Tier string
	ID   string
}

// Result is the outcome of a consuming admission check.
type Result struct {
	Admitted  bool      // Whether the request may proceed
	Remaining int       // Requests left in the current window
	Limit     int       // Tier quota per window
	ResetAt   time.Time // When the current window ends
	Tier      string    // Tier the quota was drawn from
}

// Status is the outcome of a non-consuming status query.
type Status struct {
	Remaining int
	Limit     int
	ResetAt   time.Time
	Tier      string
}

// SnapshotEntry describes one tracked key for operational inspection.
type SnapshotEntry struct {
	Count       int           `json:"count"`
	WindowStart time.Time     `json:"window_start"`
	ResetIn     time.Duration `json:"reset_in"`
}

// Limiter defines the admission contract. Implementations must be safe for
// concurrent use.
type Limiter interface {
	// CheckAndConsume atomically evaluates and, if admitted, consumes one
	// slot of the caller's window.
	CheckAndConsume(identity *Identity, originAddr string) Result

	// PeekStatus reports the caller's quota without consuming or mutating
	// any window state.
	PeekStatus(identity *Identity, originAddr string) Status

	// Reset forgets the caller's window entirely. A no-op for unknown keys.
	Reset(identity *Identity, originAddr string)

	// Snapshot returns a copy of the entire counter store. Debug hook only,
	// not part of the admission contract.
	Snapshot() map[string]SnapshotEntry

	// Close stops background goroutines and releases resources.
	Close()
}

type identityKey struct{}

// NewContext returns a context carrying the resolved caller identity.
// The auth middleware stores it; the rate limit middleware reads it.
func NewContext(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext extracts the caller identity, or nil for guests.
func FromContext(ctx context.Context) *Identity {
	if id, ok := ctx.Value(identityKey{}).(*Identity); ok {
		return id
	}
	return nil
}
