package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
)

// uintParam parses a numeric path parameter. A malformed id is reported
// with the not-found code the handler would use for a missing row, so
// /orders/abc and /orders/999999 look the same to clients.
func uintParam(r *http.Request, name string, code apperr.Code, message string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.NotFound(code, message)
	}
	return uint(id), nil
}

// queryInt parses an optional integer query parameter, falling back when
// absent or malformed.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
