package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/bazaar/pkg/middleware"
)

func corsHandler(opts middleware.CORSOptions, reached *bool) http.Handler {
	return middleware.CORS(opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	opts := middleware.DefaultCORSOptions()
	opts.AllowedOrigins = []string{"https://shop.example.com"}

	var reached bool
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	corsHandler(opts, &reached).ServeHTTP(rec, req)

	if !reached {
		t.Fatal("handler not reached")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
		t.Errorf("allow-origin = %q", got)
	}
	if got := rec.Header().Get("Vary"); got != "Origin" {
		t.Errorf("vary = %q, want Origin", got)
	}
}

func TestCORSSkipsUnlistedOrigin(t *testing.T) {
	opts := middleware.DefaultCORSOptions()
	opts.AllowedOrigins = []string{"https://shop.example.com"}

	var reached bool
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	corsHandler(opts, &reached).ServeHTTP(rec, req)

	// The request itself is still served; only the allow headers are withheld.
	if !reached {
		t.Fatal("handler not reached")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow-origin = %q, want empty", got)
	}
}

func TestCORSWildcardAndPreflight(t *testing.T) {
	var reached bool
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/carts", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	corsHandler(middleware.DefaultCORSOptions(), &reached).ServeHTTP(rec, req)

	// Preflights end at the middleware.
	if reached {
		t.Error("preflight must not reach the handler")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "300" {
		t.Errorf("max-age = %q, want 300", got)
	}
}
