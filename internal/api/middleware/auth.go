package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hackmap/engine/internal/api/types"
	appErr "github.com/hackmap/engine/pkg/errors"
)

type userKeyType string

const UserIDKey userKeyType = "user_id"

// TokenParser resolves a bearer token to a user id.
type TokenParser interface {
	Parse(token string) (uint, error)
}

// Auth requires a valid Bearer token and stores the user id in the context.
func Auth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, ok := bearerUser(r, tokens)
			if !ok {
				writeUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
		})
	}
}

// OptionalAuth attaches the user id when a valid token is present and lets
// anonymous requests through. A malformed or expired token is still rejected.
func OptionalAuth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			uid, ok := bearerUser(r, tokens)
			if !ok {
				writeUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
		})
	}
}

func bearerUser(r *http.Request, tokens TokenParser) (uint, bool) {
	ah := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return 0, false
	}
	uid, err := tokens.Parse(strings.TrimSpace(ah[len("Bearer "):]))
	if err != nil {
		return 0, false
	}
	return uid, true
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(types.APIResponse{
		Success: false,
		Error:   &types.APIError{Code: string(appErr.CodeUnauthorized), Message: "authentication required"},
	})
}

func WithUserID(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

// GetUserID returns the authenticated user id, if any.
func GetUserID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	return id, ok
}
