package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/crucial707/authgate/internal/auth"
)

type key string

// IdentityKey is the context key under which the verified token identity is stored.
const IdentityKey key = "identity"

// GetIdentity returns the authenticated identity from the request context.
func GetIdentity(ctx context.Context) (string, bool) {
	identity, ok := ctx.Value(IdentityKey).(string)
	return identity, ok
}

// JWT validates the bearer token on each request and stores the identity in
// the context. Expired and invalid tokens both get 401 but with distinct
// messages, so a client knows whether to re-authenticate or fix its request.
func JWT(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				jsonError(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			identity, err := auth.ParseToken(tokenStr, secret)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					jsonError(w, auth.ErrTokenExpired.Error(), http.StatusUnauthorized)
					return
				}
				jsonError(w, auth.ErrInvalidToken.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
