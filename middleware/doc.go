// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, duration_ms).

# Sessions

RequireSession resolves "Authorization: Bearer <token>" through an
Authenticator and stores the account ID in the request context:

	mux.HandleFunc("POST /activity", middleware.WithLogging(
		middleware.RequireSession(accounts, activityHandler.RecordAction)))

	accountID, ok := middleware.AccountID(r.Context())

Handlers never take identity from the request body.

# Rate Limiting

Per-client token buckets (golang.org/x/time/rate):

	rl := middleware.NewRateLimiter(5, 30)
	go rl.Cleanup(ctx)
	mux.HandleFunc("POST /auth/login", rl.Limit(handler))

# Metrics

	middleware.InitPrometheus(ledger.Collectors()...)
	handler := middleware.MonitorMiddleware(mux)

Counts requests by route pattern, method and status, observes latency, and
counts 401/403/429 responses.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type and Authorization.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies (capped at 1 MiB):

	var req models.CredentialsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for rate limiting and hashed session audit data.
*/
package middleware
