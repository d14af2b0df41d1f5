// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/streakbreak/auth"
	"github.com/danielhkuo/streakbreak/models"
)

// CreateSession issues a bearer token for the account.
// The raw token is returned once; only its HMAC is stored.
func (s *Service) CreateSession(ctx context.Context, accountID, clientIP, userAgent string) (string, time.Time, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return "", time.Time{}, err
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.cfg.SessionTTL)

	var ipHash *string
	if clientIP != "" {
		h := auth.HashIP(clientIP, s.cfg.SessionSecret)
		ipHash = &h
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session (token_hash, account_id, created_at, expires_at, ip_hash, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, auth.HashToken(token, s.cfg.SessionSecret), accountID, now, expiresAt, ipHash, userAgent)

	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: insert session: %w", models.ErrStorageUnavailable, err)
	}

	slog.Info("session created", "account_id", accountID, "expires_at", expiresAt)
	return token, expiresAt, nil
}

// Authenticate resolves a bearer token to the account it was issued for
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	if err := auth.ValidateTokenFormat(token); err != nil {
		return "", models.ErrInvalidSession
	}

	var accountID string
	var expiresAt time.Time
	err := s.db.QueryRowContext(ctx, `
		SELECT account_id, expires_at FROM session WHERE token_hash = $1
	`, auth.HashToken(token, s.cfg.SessionSecret)).Scan(&accountID, &expiresAt)

	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrInvalidSession
	}
	if err != nil {
		return "", fmt.Errorf("%w: query session: %w", models.ErrStorageUnavailable, err)
	}

	if !s.now().Before(expiresAt) {
		return "", models.ErrInvalidSession
	}

	return accountID, nil
}

// Revoke deletes the session for token. Unknown tokens are not an error.
func (s *Service) Revoke(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM session WHERE token_hash = $1
	`, auth.HashToken(token, s.cfg.SessionSecret))
	if err != nil {
		return fmt.Errorf("%w: delete session: %w", models.ErrStorageUnavailable, err)
	}
	return nil
}

// PurgeExpiredSessions removes sessions past their expiry and reports how many
func (s *Service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM session WHERE expires_at <= $1
	`, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("%w: purge sessions: %w", models.ErrStorageUnavailable, err)
	}
	return res.RowsAffected()
}

// RunSessionJanitor purges expired sessions every interval until ctx is done
func (s *Service) RunSessionJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpiredSessions(ctx)
			if err != nil {
				slog.Warn("session purge failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("expired sessions purged", "count", n)
			}
		}
	}
}
