// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/streakbreak/ledger"
	"github.com/danielhkuo/streakbreak/middleware"
	"github.com/danielhkuo/streakbreak/models"
)

type ActivityHandler struct {
	ledger *ledger.Ledger
}

func NewActivityHandler(l *ledger.Ledger) *ActivityHandler {
	return &ActivityHandler{ledger: l}
}

// RecordAction handles POST /activity
// Requires RequireSession; the account comes from the session, not the body
func (h *ActivityHandler) RecordAction(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authorization bearer token required")
		return
	}

	var req models.RecordActionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	for _, claimed := range req.ClaimedUserIDs() {
		if claimed != accountID {
			middleware.ErrorResponse(w, http.StatusForbidden, "user_id does not match session")
			return
		}
	}

	rec, acct, err := h.ledger.RecordAction(r.Context(), accountID, req.Action, req.Date)
	if err != nil {
		writeServiceError(w, err, "record action")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RecordActionResponse{
		Record:  *rec,
		Account: *acct,
	})
}

// ListRecords handles GET /activity?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ActivityHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authorization bearer token required")
		return
	}

	q := r.URL.Query()
	records, err := h.ledger.ListRecords(r.Context(), accountID, q.Get("from"), q.Get("to"))
	if err != nil {
		writeServiceError(w, err, "list records")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListRecordsResponse{Records: records})
}

// Summary handles GET /activity/summary
func (h *ActivityHandler) Summary(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authorization bearer token required")
		return
	}

	sum, err := h.ledger.Summary(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err, "summary")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sum)
}
