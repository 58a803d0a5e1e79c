// Package response writes the JSON bodies the Bazaar API speaks.
//
// Success payloads are plain maps assembled by controllers
// ({"success":true,"order":...}); failures always go through Fail so every
// error leaves the process in the same shape:
//
//	{"message": "...", "errorCode": 2005, "errors": {...}?}
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
)

type errorBody struct {
	Message   string            `json:"message"`
	ErrorCode apperr.Code       `json:"errorCode"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// OK writes a 200 with the given payload.
func OK(w http.ResponseWriter, payload any) {
	JSON(w, http.StatusOK, payload)
}

// Created writes a 201 with the given payload.
func Created(w http.ResponseWriter, payload any) {
	JSON(w, http.StatusCreated, payload)
}

// Fail is the single error boundary: it converts any error into the
// uniform error body. Unexpected errors are logged with their cause and
// surfaced as an opaque 500.
func Fail(w http.ResponseWriter, err error) {
	appErr := apperr.From(err)

	if appErr.Kind == apperr.KindInternal {
		logger.Error("internal error", "error", appErr.Error())
	}

	JSON(w, statusFor(appErr.Kind), errorBody{
		Message:   appErr.Message,
		ErrorCode: appErr.Code,
		Errors:    appErr.Errors,
	})
}

// ValidationFailed writes a 422 carrying the field-level issue list.
func ValidationFailed(w http.ResponseWriter, errs map[string]string) {
	Fail(w, apperr.Validation(errs))
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindUnauthorized:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
