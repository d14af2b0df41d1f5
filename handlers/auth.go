// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/streakbreak/account"
	"github.com/danielhkuo/streakbreak/middleware"
	"github.com/danielhkuo/streakbreak/models"
)

type AuthHandler struct {
	accounts *account.Service
}

func NewAuthHandler(accounts *account.Service) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	acct, err := h.accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err, "register")
		return
	}

	h.startSession(w, r, acct)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	acct, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err, "login")
		return
	}

	h.startSession(w, r, acct)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, acct *models.Account) {
	token, expiresAt, err := h.accounts.CreateSession(r.Context(), acct.ID, middleware.GetClientIP(r), r.UserAgent())
	if err != nil {
		writeServiceError(w, err, "create session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{
		Account:   *acct,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// Logout handles POST /auth/logout
// Requires RequireSession
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.SessionToken(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authorization bearer token required")
		return
	}

	if err := h.accounts.Revoke(r.Context(), token); err != nil {
		writeServiceError(w, err, "logout")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /accounts/me
// Requires RequireSession
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authorization bearer token required")
		return
	}

	acct, err := h.accounts.Get(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err, "get account")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AccountResponse{Account: *acct})
}
