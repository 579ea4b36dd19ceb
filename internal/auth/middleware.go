package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/saiful-70/ai-rate-limiter/internal/ratelimit"
)

// Optional creates middleware that resolves the caller's identity from a
// Bearer token when one is present. On any error (missing header, malformed
// scheme, invalid or expired token) the request continues as a guest; quota
// keying then falls back to the client IP.
func Optional(issuer *TokenIssuer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(authHeader, prefix) {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := issuer.Validate(authHeader[len(prefix):])
			if err != nil {
				slog.Debug("Token validation failed, continuing as guest", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			identity := &ratelimit.Identity{
				Tier: claims.Tier,
				ID:   claims.Subject,
			}
			ctx := ratelimit.NewContext(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
