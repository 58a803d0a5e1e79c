// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

// HasRole returns middleware that allows access only to callers with one of
// the given roles. Requires middleware.Auth to have already run.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := middleware.IdentityFromCtx(r.Context())
			if !ok || !allowed[identity.Role] {
				response.Fail(w, apperr.Unauthorized("Unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
