// Package models - API request types and input validation.
//
// Validation Philosophy:
// - Fail fast with clear error messages for invalid input
// - Normalize input data for consistent processing (lowercased emails, trimmed strings)
// - Admission happens before body validation: a malformed generate request
//   still counts against the caller's window, matching edge gateways that
//   meter traffic rather than intent
package models

import (
	"errors"
	"fmt"
	"strings"
)

// MaxPromptLength bounds the prompt size accepted by the generate endpoint.
const MaxPromptLength = 32_000

// GenerateRequest asks the service to produce a completion for a prompt.
type GenerateRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// Validate checks the generate request before it reaches the admission gate.
func (r *GenerateRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return errors.New("prompt is required")
	}
	if len(r.Prompt) > MaxPromptLength {
		return fmt.Errorf("prompt exceeds maximum length of %d characters", MaxPromptLength)
	}
	if r.MaxTokens < 0 {
		return errors.New("max_tokens must not be negative")
	}
	if r.Temperature < 0 || r.Temperature > 2 {
		return errors.New("temperature must be between 0 and 2")
	}
	return nil
}

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Tier     string `json:"tier,omitempty"`
}

// Validate checks and normalizes the registration request. An empty tier
// defaults to free; guest is not a registrable tier.
func (r *RegisterRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	if r.Email == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(r.Email, "@") {
		return errors.New("email is not valid")
	}
	if len(r.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if r.Tier == "" {
		r.Tier = TierFree
	}
	if r.Tier == TierGuest || !ValidTier(r.Tier) {
		return fmt.Errorf("invalid tier: %s", r.Tier)
	}
	return nil
}

// LoginRequest exchanges credentials for a JWT.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks and normalizes the login request.
func (r *LoginRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}
