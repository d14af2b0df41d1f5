// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the streakbreak API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(ctx, db, cfg)

Cancelling ctx stops the session janitor and the rate limiter cleanup.

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Accounts (public, rate limited per client):

	POST /auth/register - Create account, returns a session
	POST /auth/login    - Verify credentials, returns a session

Session required (Authorization: Bearer <token>):

	POST /auth/logout      - Revoke the current session
	GET  /accounts/me      - Current account with counters
	POST /activity         - Record today's (or a given day's) action
	GET  /activity         - List records, optional ?from=&to=
	GET  /activity/summary - Totals recomputed from records
*/
package router
