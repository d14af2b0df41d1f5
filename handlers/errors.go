// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/streakbreak/middleware"
	"github.com/danielhkuo/streakbreak/models"
)

// writeServiceError maps service errors to HTTP responses. Client errors
// are returned verbatim; anything else is logged and hidden.
func writeServiceError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidAction):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, models.ErrInvalidSession):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session")
	case errors.Is(err, models.ErrDuplicateUsername):
		middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
	case errors.Is(err, models.ErrAlreadyRecorded):
		middleware.ErrorResponse(w, http.StatusConflict, "Already recorded today")
	case errors.Is(err, models.ErrAccountNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Account not found")
	default:
		slog.Error("request failed", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Service temporarily unavailable")
	}
}
