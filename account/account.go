// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/streakbreak/auth"
	"github.com/danielhkuo/streakbreak/cliparse"
	"github.com/danielhkuo/streakbreak/db"
	"github.com/danielhkuo/streakbreak/models"
)

const maxUsernameLen = 64

type Service struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time

	// Compared against when the username is unknown so both failure
	// paths cost one bcrypt comparison.
	dummyOnce sync.Once
	dummyHash string
}

func NewService(db *sql.DB, cfg cliparse.Config) *Service {
	return &Service{db: db, cfg: cfg, now: time.Now}
}

// Register creates an account with zeroed counters
func (s *Service) Register(ctx context.Context, username, password string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", models.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", models.ErrValidation)
	}
	if len(username) > maxUsernameLen {
		return nil, fmt.Errorf("%w: username must be at most %d characters", models.ErrValidation, maxUsernameLen)
	}

	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: password must be at most 72 bytes", models.ErrValidation)
	}
	if err != nil {
		return nil, err
	}

	acct := &models.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO account (id, username, password_hash, streak_count, break_count, created_at)
		VALUES ($1, $2, $3, 0, 0, $4)
	`, acct.ID, acct.Username, acct.PasswordHash, acct.CreatedAt)

	if db.IsUniqueViolation(err) {
		return nil, models.ErrDuplicateUsername
	}
	if err != nil {
		return nil, fmt.Errorf("%w: insert account: %w", models.ErrStorageUnavailable, err)
	}

	slog.Info("account registered", "account_id", acct.ID, "username", acct.Username)
	return acct, nil
}

// Login verifies credentials. Unknown usernames and wrong passwords
// return the same error.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", models.ErrValidation)
	}

	acct, err := s.scanAccount(s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, streak_count, break_count, created_at
		FROM account
		WHERE username = $1
	`, username))

	if errors.Is(err, sql.ErrNoRows) {
		auth.CheckPassword(s.fakeHash(), password)
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query account: %w", models.ErrStorageUnavailable, err)
	}

	if err := auth.CheckPassword(acct.PasswordHash, password); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return acct, nil
}

// Get loads an account by ID
func (s *Service) Get(ctx context.Context, accountID string) (*models.Account, error) {
	acct, err := s.scanAccount(s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, streak_count, break_count, created_at
		FROM account
		WHERE id = $1
	`, accountID))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query account: %w", models.ErrStorageUnavailable, err)
	}
	return acct, nil
}

func (s *Service) scanAccount(row *sql.Row) (*models.Account, error) {
	var acct models.Account
	err := row.Scan(
		&acct.ID, &acct.Username, &acct.PasswordHash,
		&acct.StreakCount, &acct.BreakCount, &acct.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (s *Service) fakeHash() string {
	s.dummyOnce.Do(func() {
		hash, err := auth.HashPassword("streakbreak-placeholder", s.cfg.BcryptCost)
		if err != nil {
			slog.Error("failed to build placeholder hash", "error", err)
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
