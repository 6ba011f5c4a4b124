// internal/auth/middleware.go

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/imadgeboyega/kiekky-match/internal/common/logging"
	"github.com/imadgeboyega/kiekky-match/internal/common/utils"
)

type contextKey string

const searcherIDKey contextKey = "searcherID"

// Middleware resolves the searcher from a bearer access token.
type Middleware struct {
	secret string
	logger *logging.Logger
}

func NewMiddleware(secret string, logger *logging.Logger) *Middleware {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Middleware{secret: secret, logger: logger}
}

// Authenticate verifies the JWT and stores the searcher id in the request context
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Extract token from Authorization header
		token := extractToken(r)
		if token == "" {
			utils.ErrorResponse(w, "Missing or invalid authorization header", http.StatusUnauthorized)
			return
		}

		// 2. Validate token
		claims, err := utils.ValidateJWT(token, m.secret)
		if err != nil {
			m.logger.Debug("rejected bearer token", "error", err)
			utils.ErrorResponse(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		// 3. Only access tokens may search
		if claims.Type != "access" || claims.UserID <= 0 {
			utils.ErrorResponse(w, "Invalid token type", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSearcherID(r.Context(), claims.UserID)))
	})
}

// extractToken supports the "Bearer <token>" format
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func WithSearcherID(ctx context.Context, searcherID int64) context.Context {
	return context.WithValue(ctx, searcherIDKey, searcherID)
}

// SearcherIDFromContext extracts the searcher id set by Authenticate
func SearcherIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(searcherIDKey).(int64)
	return id, ok
}
