package bind_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shashiranjanraj/bazaar/pkg/bind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addressInput struct {
	LineOne string `json:"lineOne" validate:"required"`
	Pincode string `json:"pincode" validate:"required,size=6"`
}

func TestJSONValid(t *testing.T) {
	req := httptest.NewRequest("POST", "/",
		strings.NewReader(`{"lineOne":"12 MG Road","pincode":"560001"}`))

	var in addressInput
	errs, err := bind.JSON(req, &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "12 MG Road", in.LineOne)
}

func TestJSONValidationErrors(t *testing.T) {
	req := httptest.NewRequest("POST", "/",
		strings.NewReader(`{"pincode":"12"}`))

	var in addressInput
	errs, err := bind.JSON(req, &in)
	require.NoError(t, err)
	assert.Contains(t, errs, "lineOne")
	assert.Contains(t, errs, "pincode")
}

func TestJSONMalformed(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{`))

	var in addressInput
	_, err := bind.JSON(req, &in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestJSONBodyTooLarge(t *testing.T) {
	t.Setenv("MAX_BODY_BYTES", "16")
	req := httptest.NewRequest("POST", "/",
		strings.NewReader(`{"lineOne":"a very long line that exceeds the cap","pincode":"560001"}`))

	var in addressInput
	_, err := bind.JSON(req, &in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}
