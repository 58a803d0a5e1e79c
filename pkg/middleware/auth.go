package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

// Identity is the resolved caller attached to the request context.
// It is a value, not a pointer: handlers cannot mutate it.
type Identity struct {
	UserID uint
	Role   string
}

// IdentityResolver checks that the token's subject still exists and returns
// the caller's current identity. Wired to the user repository in app/routes.
type IdentityResolver func(ctx context.Context, userID uint) (Identity, error)

type identityKey struct{}

// IdentityFromCtx extracts the authenticated caller from the context.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// Auth returns middleware that authenticates a bearer token and attaches
// the resolved Identity to the request context. The role always comes from
// the resolver (the database), not from the token, so role changes take
// effect on the next request.
func Auth(resolve IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.Fail(w, apperr.Unauthenticated("No token provided"))
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.Fail(w, apperr.Unauthenticated("Invalid token"))
				return
			}

			identity, err := resolve(r.Context(), claims.UserID)
			if err != nil {
				response.Fail(w, apperr.Unauthenticated("Unauthorized"))
				return
			}

			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
