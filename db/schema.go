// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The statements stick to the subset PostgreSQL and SQLite share.
// Timestamps are always supplied by the application.
const schema = `
-- Accounts
CREATE TABLE IF NOT EXISTS account (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    streak_count INTEGER NOT NULL DEFAULT 0 CHECK (streak_count >= 0),
    break_count INTEGER NOT NULL DEFAULT 0 CHECK (break_count >= 0),
    created_at TIMESTAMP NOT NULL
);

-- Activity records: one per account per calendar day
CREATE TABLE IF NOT EXISTS activity_record (
    id TEXT PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES account(id) ON DELETE CASCADE,
    day TEXT NOT NULL,
    action TEXT NOT NULL CHECK (action IN ('streak', 'break')),
    created_at TIMESTAMP NOT NULL,
    UNIQUE (account_id, day)
);

CREATE INDEX IF NOT EXISTS idx_activity_record_account_day ON activity_record(account_id, day);

-- Sessions
CREATE TABLE IF NOT EXISTS session (
    token_hash TEXT PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES account(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL,
    expires_at TIMESTAMP NOT NULL,
    ip_hash TEXT,
    user_agent TEXT
);

CREATE INDEX IF NOT EXISTS idx_session_account_id ON session(account_id);
`
