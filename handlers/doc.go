// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the streakbreak API.

# Handler Types

  - AuthHandler: Registration, login, logout and the current account
  - ActivityHandler: Recording actions, listing records and summaries

Handlers wrap the account and ledger services:

	authHandler := handlers.NewAuthHandler(accounts)
	activityHandler := handlers.NewActivityHandler(ledger.New(db, cfg.Location()))

# Identity

Session-protected handlers read the account ID placed in the context by
middleware.RequireSession. A user_id in the POST /activity body is optional
and must match the session, otherwise the request is rejected with 403.

# Error Mapping

	400  validation failures, unknown actions, malformed dates
	401  bad credentials, missing or expired sessions
	409  duplicate username, action already recorded for that day
	500  storage failures (details are logged, not returned)
*/
package handlers
