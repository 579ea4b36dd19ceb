package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/saiful-70/ai-rate-limiter/internal/llm"
	"github.com/saiful-70/ai-rate-limiter/internal/models"
	"github.com/saiful-70/ai-rate-limiter/internal/ratelimit"
)

// Generate handles text generation requests. The route is gated by the
// admission middleware, so a request reaching this handler has already
// consumed one slot of its window.
// POST /api/v1/generate
func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeBadRequest, "Invalid JSON body")
		return
	}

	if err := req.Validate(); err != nil {
		h.writeErrorResponse(w, http.StatusUnprocessableEntity, models.ErrorCodeValidation, err.Error())
		return
	}

	completion, err := h.provider.Generate(r.Context(), llm.Request{
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		h.writeUpstreamError(w, r, err)
		return
	}

	identity := ratelimit.FromContext(r.Context())
	status := h.limiter.PeekStatus(identity, ratelimit.ClientIP(r))

	h.writeJSONResponse(w, http.StatusOK, models.GenerateResponse{
		Text:  completion.Text,
		Model: completion.Model,
		Usage: models.TokenUsage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		},
		RateLimit: models.LimitInfo{
			Limit:     status.Limit,
			Remaining: status.Remaining,
			ResetAt:   status.ResetAt,
			Tier:      status.Tier,
		},
	})
}

func (h *Handlers) writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, llm.ErrUpstreamAuth):
		slog.Error("Upstream provider rejected credentials", "error", err)
		h.writeErrorResponse(w, http.StatusBadGateway, models.ErrorCodeUpstreamError, "AI provider rejected the request")
	case errors.Is(err, llm.ErrUpstreamQuota):
		slog.Warn("Upstream provider quota exhausted", "error", err)
		h.writeErrorResponse(w, http.StatusServiceUnavailable, models.ErrorCodeServiceUnavailable, "AI provider is over capacity, try again later")
	case errors.Is(err, context.DeadlineExceeded):
		slog.Warn("Upstream provider timed out", "error", err)
		h.writeErrorResponse(w, http.StatusGatewayTimeout, models.ErrorCodeUpstreamError, "AI provider timed out")
	default:
		slog.Error("Upstream provider call failed", "error", err)
		h.writeErrorResponse(w, http.StatusBadGateway, models.ErrorCodeUpstreamError, "AI provider call failed")
	}
}
