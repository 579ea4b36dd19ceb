// Package models - API response types and error handling.
//
// Response Design Principles:
// - Consistent JSON structure across all endpoints
// - Optional fields use omitempty to reduce response size
// - Rich error information with machine-readable codes
// - RFC3339 timestamps for international compatibility
package models

import (
	"time"
)

// GenerateResponse carries the completion produced for an admitted request,
// together with the caller's remaining quota for the current window.
type GenerateResponse struct {
	Text      string     `json:"text"`
	Model     string     `json:"model"`
	Usage     TokenUsage `json:"usage"`
	RateLimit LimitInfo  `json:"rate_limit"`
}

// TokenUsage reports upstream token consumption for billing visibility.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// LimitInfo mirrors the X-RateLimit-* headers in the response body.
type LimitInfo struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
	Tier      string    `json:"tier"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

// LimitStatusResponse is the non-consuming quota status view.
type LimitStatusResponse struct {
	Key       string    `json:"key"`
	Tier      string    `json:"tier"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// HealthResponse reports service health for probes.
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse provides consistent error information across all endpoints.
type ErrorResponse struct {
	Error     string            `json:"error"`                // Error type (always "error")
	Message   string            `json:"message"`              // Human-readable error description
	Code      string            `json:"code,omitempty"`       // Machine-readable error code
	Details   map[string]string `json:"details,omitempty"`    // Field-specific error details
	Timestamp time.Time         `json:"timestamp"`            // Error occurrence time
	RequestID string            `json:"request_id,omitempty"` // Unique request identifier
}

// Error codes used across the API.
const (
	ErrorCodeBadRequest         = "BAD_REQUEST"         // 400: Invalid request format
	ErrorCodeValidation         = "VALIDATION_ERROR"    // 422: Input validation failed
	ErrorCodeUnauthorized       = "UNAUTHORIZED"        // 401: Authentication required or failed
	ErrorCodeForbidden          = "FORBIDDEN"           // 403: Permission denied
	ErrorCodeNotFound           = "NOT_FOUND"           // 404: Resource doesn't exist
	ErrorCodeConflict           = "CONFLICT"            // 409: Resource conflict
	ErrorCodeRateLimited        = "RATE_LIMIT_EXCEEDED" // 429: Quota exhausted for window
	ErrorCodeInvalidRequest     = "INVALID_REQUEST"     // 400: Invalid request data
	ErrorCodeInternalError      = "INTERNAL_ERROR"      // 500: Server-side error
	ErrorCodeUpstreamError      = "UPSTREAM_ERROR"      // 502: AI provider failure
	ErrorCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503: Service temporarily down
)

// NewErrorResponse creates a standard error response.
func NewErrorResponse(message string, code string) *ErrorResponse {
	return &ErrorResponse{
		Error:     "error",
		Message:   message,
		Code:      code,
		Timestamp: time.Now(),
	}
}

// WithDetails attaches field-specific details to an error response.
func (e *ErrorResponse) WithDetails(details map[string]string) *ErrorResponse {
	e.Details = details
	return e
}
