package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aarushi-rai/currency-exchange-be/internal/auth"
	"github.com/aarushi-rai/currency-exchange-be/internal/http/respond"
)

type identityKey struct{}

// RequireAuth rejects requests without a valid bearer access token and
// attaches the verified claims to the request context.
func RequireAuth(tokens *auth.TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := claimsFromRequest(tokens, r)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "missing or invalid bearer token")
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims)))
	})
}

// OptionalAuth attaches claims when a valid bearer token is present and
// passes the request through either way.
func OptionalAuth(tokens *auth.TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, err := claimsFromRequest(tokens, r); err == nil {
			r = r.WithContext(withIdentity(r.Context(), claims))
		}
		next.ServeHTTP(w, r)
	})
}

// Identity returns the verified claims attached by RequireAuth/OptionalAuth.
func Identity(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(identityKey{}).(*auth.Claims)
	return claims, ok
}

func withIdentity(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, identityKey{}, claims)
}

func claimsFromRequest(tokens *auth.TokenManager, r *http.Request) (*auth.Claims, error) {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return nil, errors.New("missing bearer token")
	}
	return tokens.Parse(strings.TrimSpace(strings.TrimPrefix(header, prefix)))
}
