package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/kiekky-match/internal/common/utils"
)

const secret = "middleware-secret"

func token(t *testing.T, userID int64, tokenType string, ttl time.Duration, key string) string {
	t.Helper()
	now := time.Now()
	s, err := utils.GenerateJWT(&utils.JWTClaims{
		UserID:    userID,
		Type:      tokenType,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}, key)
	require.NoError(t, err)
	return s
}

func TestAuthenticate(t *testing.T) {
	var seen int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := SearcherIDFromContext(r.Context())
		require.True(t, ok)
		seen = id
		w.WriteHeader(http.StatusNoContent)
	})
	handler := NewMiddleware(secret, nil).Authenticate(next)

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{name: "valid access token", header: "Bearer " + token(t, 42, "access", time.Hour, secret), wantCode: http.StatusNoContent},
		{name: "missing header", header: "", wantCode: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantCode: http.StatusUnauthorized},
		{name: "refresh token", header: "Bearer " + token(t, 42, "refresh", time.Hour, secret), wantCode: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + token(t, 42, "access", -time.Hour, secret), wantCode: http.StatusUnauthorized},
		{name: "wrong key", header: "Bearer " + token(t, 42, "access", time.Hour, "other"), wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusNoContent {
				assert.Equal(t, int64(42), seen)
			} else {
				assert.Zero(t, seen)
			}
		})
	}
}

func TestSearcherIDFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := SearcherIDFromContext(req.Context())
	assert.False(t, ok)

	id, ok := SearcherIDFromContext(WithSearcherID(req.Context(), 7))
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
}
