// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/streakbreak/auth"
	"github.com/danielhkuo/streakbreak/models"
)

type contextKey int

const (
	accountIDKey contextKey = iota
	sessionTokenKey
)

// Authenticator resolves a bearer token to an account ID
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// RequireSession rejects requests without a valid bearer token and stores
// the resolved account ID in the request context.
func RequireSession(authn Authenticator, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Authorization bearer token required")
			return
		}

		accountID, err := authn.Authenticate(r.Context(), token)
		if errors.Is(err, models.ErrInvalidSession) {
			ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session")
			return
		}
		if err != nil {
			slog.Error("failed to authenticate session", "error", err)
			ErrorResponse(w, http.StatusInternalServerError, "Service temporarily unavailable")
			return
		}

		ctx := context.WithValue(r.Context(), accountIDKey, accountID)
		ctx = context.WithValue(ctx, sessionTokenKey, token)
		next(w, r.WithContext(ctx))
	}
}

// AccountID returns the authenticated account ID set by RequireSession
func AccountID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountIDKey).(string)
	return id, ok && id != ""
}

// SessionToken returns the bearer token RequireSession accepted
func SessionToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(sessionTokenKey).(string)
	return token, ok && token != ""
}
