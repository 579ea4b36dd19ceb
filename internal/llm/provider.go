// Package llm provides the client for the downstream AI text-generation
// provider. The service never calls it before the admission gate has
// admitted the request.
package llm

import (
	"context"
	"errors"
)

// Typed upstream failures, so handlers can distinguish a misconfigured API
// key from the provider's own throttling without parsing error strings.
var (
	// ErrUpstreamAuth indicates the provider rejected our credentials.
	ErrUpstreamAuth = errors.New("upstream provider rejected credentials")

	// ErrUpstreamQuota indicates the provider throttled or exhausted our
	// account quota. Distinct from this service's own per-tier limits.
	ErrUpstreamQuota = errors.New("upstream provider quota exceeded")
)

// Request is a single text-generation request.
type Request struct {
	Prompt      string
	MaxTokens   int     // 0 means the configured default
	Temperature float64 // 0 means the configured default
}

// Usage reports upstream token consumption.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Completion is the provider's response.
type Completion struct {
	Text  string
	Model string
	Usage Usage
}

// Provider generates text completions.
type Provider interface {
	// Generate produces a completion for the request. Blocking; honors
	// context cancellation.
	Generate(ctx context.Context, req Request) (*Completion, error)

	// Model returns the configured model name for response metadata.
	Model() string
}
