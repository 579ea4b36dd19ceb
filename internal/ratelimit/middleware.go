package ratelimit

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/saiful-70/ai-rate-limiter/internal/models"
)

// Middleware returns HTTP middleware that gates the wrapped handler on the
// caller's tier quota. It reads the identity placed in the request context by
// the auth middleware (nil means guest) and keys anonymous callers by client
// IP. Rate limit headers are set on every response; a denied request gets a
// 429 with a JSON error body and a Retry-After hint.
func Middleware(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := FromContext(r.Context())
			origin := ClientIP(r)

			result := limiter.CheckAndConsume(identity, origin)

			setLimitHeaders(w, result.Limit, result.Remaining, result.ResetAt)

			if !result.Admitted {
				retryAfterSecs := int(time.Until(result.ResetAt).Seconds()) + 1
				if retryAfterSecs < 1 {
					retryAfterSecs = 1
				}
				w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfterSecs))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)

				errorResp := models.NewErrorResponse("Rate limit exceeded", models.ErrorCodeRateLimited)
				json.NewEncoder(w).Encode(errorResp)

				slog.Warn("Rate limit exceeded",
					"key", DeriveKey(identity, origin),
					"tier", result.Tier,
					"limit", result.Limit,
					"retry_after", retryAfterSecs,
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// setLimitHeaders writes the standard X-RateLimit-* headers.
func setLimitHeaders(w http.ResponseWriter, limit, remaining int, resetAt time.Time) {
	w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
	w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
	w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetAt.Unix()))
}

// ClientIP extracts the client IP from the request, checking proxy headers.
// The port is stripped so connections from the same address share a window.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
