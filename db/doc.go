// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles store connections and schema creation.

# Connecting

Open selects the driver by type and pings the store:

	conn, err := db.Open(ctx, db.TypePostgres, "postgres://...")
	conn, err := db.Open(ctx, db.TypeSQLite, "file:streakbreak.db")

PostgreSQL goes through lib/pq, SQLite through modernc.org/sqlite. SQLite
connections are limited to one so writers queue instead of failing.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - account: Credentials and lifetime streak/break counters
  - activity_record: One streak or break per account per day
  - session: Hashed bearer tokens with expiry

# Relationships

	account 1──* activity_record
	account 1──* session

All foreign keys use ON DELETE CASCADE.

# Constraints

UNIQUE (account_id, day) on activity_record is what enforces one action per
day. Callers detect its rejection with IsUniqueViolation, which understands
both the PostgreSQL SQLSTATE 23505 and SQLite's extended constraint codes.
*/
package db
