package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/kozaktomas/securevote/internal/auth"
)

type contextKey string

const voterContextKey contextKey = "voter_id"

// RequireVoter is middleware that requires a valid bearer session credential.
// The bound voter id is placed in the request context on success.
func RequireVoter(issuer *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, `{"error": "missing credential"}`, http.StatusUnauthorized)
				return
			}

			voterID, err := issuer.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				msg := `{"error": "invalid credential"}`
				if errors.Is(err, auth.ErrExpiredCredential) {
					msg = `{"error": "credential expired"}`
				}
				http.Error(w, msg, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), voterContextKey, voterID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// VoterFromContext retrieves the authenticated voter id from the request context.
func VoterFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(voterContextKey).(int64)
	return id, ok
}

// SetVoterInContext adds a voter id to the context.
// This is primarily for testing - use RequireVoter middleware in production.
func SetVoterInContext(ctx context.Context, voterID int64) context.Context {
	return context.WithValue(ctx, voterContextKey, voterID)
}
