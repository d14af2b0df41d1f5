// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file is loaded into the environment first when present.

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type (sqlite or postgres)
	-session-secret  Session token HMAC secret
	-session-ttl     Session lifetime
	-tz              IANA time zone for calendar days
	-auth-rate       Auth requests per second per client
	-auth-burst      Auth request burst per client
	-bcrypt-cost     Password hashing cost

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	SESSION_SECRET  → -session-secret
	SESSION_TTL     → -session-ttl
	LEDGER_TIMEZONE → -tz
	AUTH_RATE_LIMIT → -auth-rate
	AUTH_RATE_BURST → -auth-burst
	BCRYPT_COST     → -bcrypt-cost

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - SESSION_SECRET is missing
  - the database type is not sqlite or postgres
  - the time zone cannot be loaded
  - the bcrypt cost is out of range

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(ctx, conn, cfg)
*/
package cliparse
