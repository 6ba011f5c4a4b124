package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	now := time.Now()
	token, err := GenerateJWT(&JWTClaims{
		UserID:    123,
		Type:      "access",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Minute).Unix(),
		Issuer:    "kiekky",
	}, "k")
	require.NoError(t, err)

	claims, err := ValidateJWT(token, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(123), claims.UserID)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, "kiekky", claims.Issuer)

	_, err = ValidateJWT(token, "other")
	assert.Error(t, err)
}

func TestValidateStruct(t *testing.T) {
	type request struct {
		Name  string `json:"name" validate:"required,max=3"`
		Limit int    `json:"limit" validate:"min=0"`
	}

	assert.NoError(t, ValidateStruct(request{Name: "abc"}))

	err := ValidateStruct(request{Name: "abcd", Limit: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name must be at most 3 characters")
	assert.Contains(t, err.Error(), "limit must be at least 0")
}

func TestResponses(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessResponse(rec, map[string]int{"n": 1}, http.StatusCreated)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"n":1}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	ErrorResponse(rec, "nope", http.StatusNotFound)
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "nope", resp.Error)
}
