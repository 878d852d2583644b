package middlewares

import (
	"context"
	"net/http"

	"github.com/messagely/messagely/internal/jwt"
	"github.com/messagely/messagely/internal/logger"
)

// TokenParser defines the token operations needed by the auth middleware.
type TokenParser interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	Parse(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var claimsKey = contextKey{}

// WithClaims returns a context carrying the session claims.
func WithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the session claims attached by AuthMiddleware,
// or nil when the request is unauthenticated.
func ClaimsFromContext(ctx context.Context) *jwt.Claims {
	claims, _ := ctx.Value(claimsKey).(*jwt.Claims)
	return claims
}

// AuthMiddleware returns a middleware that validates the bearer token,
// rejects revoked tokens and attaches the parsed claims to the request
// context. Deny is always 401.
func AuthMiddleware(parser TokenParser, revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := parser.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authentication failed", "err", err)
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := parser.Parse(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("authentication failed", "err", err)
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if revocations != nil {
				revoked, err := revocations.IsRevoked(ctx, claims.TokenID)
				if err != nil {
					logger.Log.Errorw("revocation check failed", "err", err)
					writeJSONError(w, http.StatusInternalServerError, "internal server error")
					return
				}
				if revoked {
					logger.Log.Infow("revoked token rejected", "token_id", claims.TokenID)
					writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
		})
	}
}
