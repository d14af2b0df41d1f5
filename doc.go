// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the streakbreak API server.

streakbreak is a daily-action ledger: each account records at most one
action per calendar day, either a "streak" (kept the habit) or a "break"
(missed it), and keeps running totals of both.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:streakbreak.db SESSION_SECRET=... go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..." -session-secret ...

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - SESSION_SECRET (-session-secret): Secret for session token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SESSION_TTL (-session-ttl): Session lifetime (default: 720h)
  - LEDGER_TIMEZONE (-tz): Zone calendar days are computed in (default: UTC)
  - AUTH_RATE_LIMIT / AUTH_RATE_BURST: Per-client limits on /auth endpoints
  - BCRYPT_COST (-bcrypt-cost): Password hashing cost

# Architecture

  - account: Registration, login and server-side sessions
  - ledger: One record per account per day, counters kept in step
  - handlers: HTTP request handlers (auth, activity)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Sessions, rate limiting, metrics, CORS, logging, JSON helpers
  - models: Request/response and domain types, sentinel errors
  - auth: Password hashing and session token primitives
  - db: Connections and schema for both drivers
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
