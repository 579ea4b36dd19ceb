package api

import (
	"net/http"

	"github.com/saiful-70/ai-rate-limiter/internal/models"
	"github.com/saiful-70/ai-rate-limiter/internal/ratelimit"
)

// LimitStatus reports the caller's current quota without consuming a slot.
// GET /api/v1/limits
func (h *Handlers) LimitStatus(w http.ResponseWriter, r *http.Request) {
	identity := ratelimit.FromContext(r.Context())
	origin := ratelimit.ClientIP(r)

	status := h.limiter.PeekStatus(identity, origin)

	h.writeJSONResponse(w, http.StatusOK, models.LimitStatusResponse{
		Key:       ratelimit.DeriveKey(identity, origin),
		Tier:      status.Tier,
		Limit:     status.Limit,
		Remaining: status.Remaining,
		ResetAt:   status.ResetAt,
	})
}

// ResetLimit forgets the caller's counting window. Debug endpoint, only
// routed when debug endpoints are enabled.
// POST /api/v1/debug/limits/reset
func (h *Handlers) ResetLimit(w http.ResponseWriter, r *http.Request) {
	identity := ratelimit.FromContext(r.Context())
	origin := ratelimit.ClientIP(r)

	h.limiter.Reset(identity, origin)

	status := h.limiter.PeekStatus(identity, origin)
	h.writeJSONResponse(w, http.StatusOK, models.LimitStatusResponse{
		Key:       ratelimit.DeriveKey(identity, origin),
		Tier:      status.Tier,
		Limit:     status.Limit,
		Remaining: status.Remaining,
		ResetAt:   status.ResetAt,
	})
}

// LimiterSnapshot dumps the whole counter store. Debug endpoint, only
// routed when debug endpoints are enabled.
// GET /api/v1/debug/limits
func (h *Handlers) LimiterSnapshot(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, h.limiter.Snapshot())
}
