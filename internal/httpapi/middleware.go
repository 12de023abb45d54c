package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/marketbay/storefront/internal/domain"
)

type contextKey string

const userContextKey contextKey = "authenticated_user"

// AuthVerifier turns a bearer token into a verified user.
type AuthVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware requires a valid bearer token and puts the verified user on
// the request context.
func AuthMiddleware(verifier AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			user, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "unauthorized", "invalid authentication credentials")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userFromContext(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(userContextKey).(*domain.User); ok {
		return user
	}
	return nil
}

func getUserID(ctx context.Context) (string, bool) {
	user := userFromContext(ctx)
	if user == nil {
		return "", false
	}
	return user.ID.Hex(), true
}
