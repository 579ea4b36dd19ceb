package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/saiful-70/ai-rate-limiter/internal/models"
)

// Claims represents the validated token claims the service cares about.
type Claims struct {
	Subject string // User ID
	Email   string
	Tier    string
}

// TokenIssuer creates and validates HS256-signed JWTs carrying the user's
// id and tier.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenIssuer creates a token issuer. The signing secret must not be
// empty; that is enforced again here so a misconfigured service fails at
// startup rather than issuing unsigned-equivalent tokens.
func NewTokenIssuer(secret, issuer string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %v", ttl)
	}
	return &TokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// Issue signs a token for the user and returns it with its expiry.
func (ti *TokenIssuer) Issue(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ti.ttl)

	token, err := jwt.NewBuilder().
		Issuer(ti.issuer).
		Subject(user.ID).
		IssuedAt(now).
		Expiration(expiresAt).
		Claim("email", user.Email).
		Claim("tier", user.Tier).
		Build()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, ti.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return string(signed), expiresAt, nil
}

// Validate parses a token and verifies its signature, expiration and issuer.
func (ti *TokenIssuer) Validate(raw string) (*Claims, error) {
	token, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKey(jwa.HS256, ti.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(ti.issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims := &Claims{Subject: token.Subject()}
	if email, ok := token.Get("email"); ok {
		if s, ok := email.(string); ok {
			claims.Email = s
		}
	}
	if tier, ok := token.Get("tier"); ok {
		if s, ok := tier.(string); ok {
			claims.Tier = s
		}
	}

	return claims, nil
}
