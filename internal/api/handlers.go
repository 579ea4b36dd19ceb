// Package api provides the HTTP surface of the aigate service: account
// registration and login, the rate-limited generate endpoint, quota status,
// health checks and optional debug endpoints for the admission engine.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/saiful-70/ai-rate-limiter/internal/auth"
	"github.com/saiful-70/ai-rate-limiter/internal/llm"
	"github.com/saiful-70/ai-rate-limiter/internal/models"
	"github.com/saiful-70/ai-rate-limiter/internal/ratelimit"
	"github.com/saiful-70/ai-rate-limiter/internal/storage"
	"github.com/saiful-70/ai-rate-limiter/internal/version"
)

// Handlers contains HTTP handlers for the aigate API.
type Handlers struct {
	store    storage.Store
	limiter  ratelimit.Limiter
	issuer   *auth.TokenIssuer
	provider llm.Provider
	config   *models.Config
}

// NewHandlers creates a new handlers instance.
func NewHandlers(store storage.Store, limiter ratelimit.Limiter, issuer *auth.TokenIssuer, provider llm.Provider, config *models.Config) *Handlers {
	return &Handlers{
		store:    store,
		limiter:  limiter,
		issuer:   issuer,
		provider: provider,
		config:   config,
	}
}

// HealthCheck handles health check requests
// GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := models.HealthResponse{
		Status:    "healthy",
		Version:   version.GetInfo().Version,
		Timestamp: time.Now().UTC(),
		Checks:    map[string]string{},
	}

	status := http.StatusOK
	if err := h.store.Ping(r.Context()); err != nil {
		response.Status = "degraded"
		response.Checks["storage"] = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		response.Checks["storage"] = "ok"
	}

	h.writeJSONResponse(w, status, response)
}

// writeJSONResponse writes a JSON response
func (h *Handlers) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already written; nothing more to send
		slog.Error("Error encoding JSON response", "error", err)
	}
}

// writeErrorResponse writes an error response
func (h *Handlers) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) {
	errorResp := models.NewErrorResponse(message, errorCode)
	h.writeJSONResponse(w, statusCode, errorResp)
}
