// Package models - User accounts and subscription tiers.
package models

import (
	"strings"
	"time"
)

// Subscription tier names. The rate limiter falls back to TierGuest for any
// tier it does not recognize, so new tiers only need a quota table entry.
const (
	TierGuest   = "guest"
	TierFree    = "free"
	TierPremium = "premium"
)

// User is a registered account. PasswordHash is a bcrypt hash and is never
// serialized into API responses.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Tier         string    `json:"tier"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidTier reports whether the given tier is one of the known names.
func ValidTier(tier string) bool {
	switch tier {
	case TierGuest, TierFree, TierPremium:
		return true
	}
	return false
}

// NormalizeEmail lowercases and trims an email address for storage lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
