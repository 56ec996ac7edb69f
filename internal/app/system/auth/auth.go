// Package auth issues and verifies the signed session tokens that gate the
// organization update and delete operations.
//
// Tokens are self-contained HS256 JWTs; nothing is persisted server-side, so
// a token stays valid until its expiry regardless of later account changes.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrInvalidToken is returned when a token is malformed, has a bad
// signature, uses an unexpected signing method, or has expired.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the decoded payload of a session token.
type Claims struct {
	jwt.RegisteredClaims
	AdminID string `json:"admin_id"`
	OrgID   string `json:"org_id"`
	Email   string `json:"email"`
}

// TokenIssuer signs and verifies session tokens with a shared HS256 secret.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenIssuer returns a TokenIssuer. ttl is the lifetime of issued tokens.
func NewTokenIssuer(secret []byte, issuer string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, issuer: issuer, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (p *TokenIssuer) TTL() time.Duration {
	return p.ttl
}

// Issue produces a signed token for the given admin and organization.
// Returns the token string and its expiry.
func (p *TokenIssuer) Issue(adminID, orgID, email string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(p.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		AdminID: adminID,
		OrgID:   orgID,
		Email:   email,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify parses and validates a token (signature, method, expiry) and
// returns its claims. Every failure mode maps to ErrInvalidToken.
func (p *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if p.issuer != "" && claims.Issuer != p.issuer {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

type ctxKey string

const claimsKey ctxKey = "tokenClaims"

// CurrentClaims returns the verified claims placed in the request context by
// RequireToken, and a "found?" flag.
func CurrentClaims(r *http.Request) (*Claims, bool) {
	c, ok := r.Context().Value(claimsKey).(*Claims)
	return c, ok
}

// RequireToken returns middleware that extracts the bearer credential from
// the Authorization header, verifies it, and injects the claims into the
// request context. Missing or invalid tokens get a 401 with a JSON body.
func (p *TokenIssuer) RequireToken(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				writeUnauthorized(w, "missing bearer token")
				return
			}

			claims, err := p.Verify(raw)
			if err != nil {
				logger.Debug("token verification failed", zap.Error(err))
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithTestClaims injects claims into the request context, bypassing the
// middleware. For handler tests only.
func WithTestClaims(r *http.Request, c *Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), claimsKey, c))
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
