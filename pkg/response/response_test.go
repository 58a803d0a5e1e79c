package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestFailStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   float64
	}{
		{"not found", apperr.NotFound(apperr.CodeOrderNotFound, "Order not found"), http.StatusNotFound, 2004},
		{"bad request", apperr.BadRequest(apperr.CodeOrderCartEmpty, "Cart is empty"), http.StatusBadRequest, 2005},
		{"unauthenticated", apperr.Unauthenticated("No token provided"), http.StatusUnauthorized, 4001},
		{"unauthorized", apperr.Unauthorized("Unauthorized"), http.StatusForbidden, 4001},
		{"validation", apperr.Validation(map[string]string{"email": "bad"}), http.StatusUnprocessableEntity, 2002},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, 3000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.Fail(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tc.code, body["errorCode"])
		})
	}
}

func TestFailHidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Fail(rec, apperr.Internal(errors.New("pq: connection refused")))

	body := decode(t, rec)
	assert.Equal(t, "Something went wrong", body["message"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestValidationFailedCarriesFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationFailed(rec, map[string]string{"pincode": "The pincode must be exactly 6 characters."})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "pincode")
}

func TestOKAndCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	response.OK(rec, map[string]any{"success": true})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	response.Created(rec, map[string]any{"id": 1})
	assert.Equal(t, http.StatusCreated, rec.Code)
}
