package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSOptions controls which cross-origin callers may reach the API. The
// storefront runs on a separate origin, so browsers preflight every
// authenticated request.
type CORSOptions struct {
	AllowedOrigins []string // exact origins, or "*" for any
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int // preflight cache lifetime in seconds
}

// DefaultCORSOptions allows any origin and the methods the route table
// actually serves. Deployments pass the storefront origin instead.
func DefaultCORSOptions() CORSOptions {
	return CORSOptions{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}
}

// CORS stamps the allow headers on requests from permitted origins and
// answers preflights with 204. Requests from origins outside the list pass
// through untouched; without the headers the browser refuses the response.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	allowAll := false
	origins := make(map[string]struct{}, len(opts.AllowedOrigins))
	for _, o := range opts.AllowedOrigins {
		if o == "*" {
			allowAll = true
			continue
		}
		origins[o] = struct{}{}
	}
	methods := strings.Join(opts.AllowedMethods, ", ")
	headers := strings.Join(opts.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(opts.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				w.Header().Add("Vary", "Origin")

				_, ok := origins[origin]
				if allowAll {
					origin, ok = "*", true
				}
				if ok {
					h := w.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Set("Access-Control-Allow-Methods", methods)
					h.Set("Access-Control-Allow-Headers", headers)
					if opts.MaxAge > 0 {
						h.Set("Access-Control-Max-Age", maxAge)
					}
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
