// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/streakbreak/account"
	"github.com/danielhkuo/streakbreak/cliparse"
	"github.com/danielhkuo/streakbreak/handlers"
	"github.com/danielhkuo/streakbreak/ledger"
	"github.com/danielhkuo/streakbreak/middleware"
)

const sessionPurgeInterval = time.Hour

// NewRouter wires every endpoint. Background work (session purging and
// rate limiter eviction) runs until ctx is done.
func NewRouter(ctx context.Context, db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Services
	accounts := account.NewService(db, cfg)
	l := ledger.New(db, cfg.Location())

	go accounts.RunSessionJanitor(ctx, sessionPurgeInterval)

	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	go authLimiter.Cleanup(ctx)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(accounts)
	activityHandler := handlers.NewActivityHandler(l)

	withSession := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSession(accounts, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	// Accounts (public, rate limited per client)
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(authLimiter.Limit(authHandler.Register)))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authLimiter.Limit(authHandler.Login)))
	mux.HandleFunc("POST /auth/logout", withSession(authHandler.Logout))
	mux.HandleFunc("GET /accounts/me", withSession(authHandler.Me))

	// Ledger (requires Authorization: Bearer)
	mux.HandleFunc("POST /activity", withSession(activityHandler.RecordAction))
	mux.HandleFunc("GET /activity", withSession(activityHandler.ListRecords))
	mux.HandleFunc("GET /activity/summary", withSession(activityHandler.Summary))

	// Root endpoint, exact match only
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("streakbreak API v1"))
	})

	return mux
}
