// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/streakbreak/db"
	"github.com/danielhkuo/streakbreak/models"
)

// Ledger records at most one action per account per calendar day and keeps
// the account's counters in step with the records.
type Ledger struct {
	db  *sql.DB
	loc *time.Location
	now func() time.Time

	// afterPrecheck runs once the existence check has passed. Tests use it
	// to land a competing record before the insert.
	afterPrecheck func(ctx context.Context, accountID, day string)
}

func New(db *sql.DB, loc *time.Location) *Ledger {
	if loc == nil {
		loc = time.UTC
	}
	return &Ledger{db: db, loc: loc, now: time.Now}
}

// Today is the current calendar day in the ledger's location
func (l *Ledger) Today() string {
	return l.now().In(l.loc).Format(models.DayLayout)
}

// NormalizeDate maps client input to a YYYY-MM-DD day in the ledger's
// location. Empty input means today; RFC 3339 timestamps are converted.
func (l *Ledger) NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return l.Today(), nil
	}

	if d, err := time.ParseInLocation(models.DayLayout, s, l.loc); err == nil {
		return d.Format(models.DayLayout), nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts.In(l.loc).Format(models.DayLayout), nil
	}

	return "", fmt.Errorf("%w: date must be YYYY-MM-DD or RFC 3339, got %q", models.ErrValidation, s)
}

// RecordAction stores action for accountID on date and increments the
// matching counter. Both happen in one transaction.
func (l *Ledger) RecordAction(ctx context.Context, accountID, action, date string) (*models.ActivityRecord, *models.Account, error) {
	if accountID == "" {
		return nil, nil, fmt.Errorf("%w: account id is required", models.ErrValidation)
	}

	act, err := models.ParseAction(action)
	if err != nil {
		rejectedTotal.WithLabelValues("invalid_action").Inc()
		return nil, nil, fmt.Errorf("%w: %w", models.ErrInvalidAction, err)
	}

	day, err := l.NormalizeDate(date)
	if err != nil {
		rejectedTotal.WithLabelValues("invalid_date").Inc()
		return nil, nil, err
	}

	// Early exit only; the UNIQUE (account_id, day) constraint is what
	// actually prevents a second record.
	var exists bool
	err = l.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM activity_record
			WHERE account_id = $1 AND day = $2
		)
	`, accountID, day).Scan(&exists)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: check existing record: %w", models.ErrStorageUnavailable, err)
	}
	if exists {
		rejectedTotal.WithLabelValues("already_recorded").Inc()
		return nil, nil, models.ErrAlreadyRecorded
	}
	if l.afterPrecheck != nil {
		l.afterPrecheck(ctx, accountID, day)
	}

	rec := &models.ActivityRecord{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Date:      day,
		Action:    act,
		CreatedAt: l.now().UTC(),
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: begin transaction: %w", models.ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO activity_record (id, account_id, day, action, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, rec.AccountID, rec.Date, string(rec.Action), rec.CreatedAt)

	if db.IsUniqueViolation(err) {
		rejectedTotal.WithLabelValues("already_recorded").Inc()
		return nil, nil, models.ErrAlreadyRecorded
	}
	if db.IsForeignKeyViolation(err) {
		return nil, nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: insert record: %w", models.ErrStorageUnavailable, err)
	}

	// Column comes from the closed Action enum, never from input
	col := act.Column()
	acct := &models.Account{ID: accountID}
	err = tx.QueryRowContext(ctx, `
		UPDATE account
		SET `+col+` = `+col+` + 1
		WHERE id = $1
		RETURNING username, streak_count, break_count
	`, accountID).Scan(&acct.Username, &acct.StreakCount, &acct.BreakCount)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: increment counter: %w", models.ErrStorageUnavailable, err)
	}

	err = tx.QueryRowContext(ctx, `
		SELECT created_at FROM account WHERE id = $1
	`, accountID).Scan(&acct.CreatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reload account: %w", models.ErrStorageUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("%w: commit: %w", models.ErrStorageUnavailable, err)
	}

	recordedTotal.WithLabelValues(string(act)).Inc()
	slog.Info("action recorded",
		"account_id", accountID,
		"record_id", rec.ID,
		"day", day,
		"action", act,
	)

	return rec, acct, nil
}

// ListRecords returns the account's records ordered by day. Empty bounds
// are open; both bounds are inclusive.
func (l *Ledger) ListRecords(ctx context.Context, accountID, from, to string) ([]models.ActivityRecord, error) {
	query := `
		SELECT id, account_id, day, action, created_at
		FROM activity_record
		WHERE account_id = $1`
	args := []any{accountID}

	if from != "" {
		d, err := l.parseBound("from", from)
		if err != nil {
			return nil, err
		}
		args = append(args, d)
		query += fmt.Sprintf(" AND day >= $%d", len(args))
	}
	if to != "" {
		d, err := l.parseBound("to", to)
		if err != nil {
			return nil, err
		}
		args = append(args, d)
		query += fmt.Sprintf(" AND day <= $%d", len(args))
	}
	query += " ORDER BY day"

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query records: %w", models.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	records := []models.ActivityRecord{}
	for rows.Next() {
		var rec models.ActivityRecord
		var action string
		if err := rows.Scan(&rec.ID, &rec.AccountID, &rec.Date, &action, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan record: %w", models.ErrStorageUnavailable, err)
		}
		rec.Action = models.Action(action)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate records: %w", models.ErrStorageUnavailable, err)
	}

	return records, nil
}

func (l *Ledger) parseBound(name, s string) (string, error) {
	d, err := time.ParseInLocation(models.DayLayout, s, l.loc)
	if err != nil {
		return "", fmt.Errorf("%w: %s must be YYYY-MM-DD", models.ErrValidation, name)
	}
	return d.Format(models.DayLayout), nil
}

// Summary counts the account's records by scanning them. It never writes,
// so a mismatch with the stored counters shows up rather than being hidden.
func (l *Ledger) Summary(ctx context.Context, accountID string) (models.SummaryResponse, error) {
	var sum models.SummaryResponse
	err := l.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN action = 'streak' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN action = 'break' THEN 1 ELSE 0 END), 0)
		FROM activity_record
		WHERE account_id = $1
	`, accountID).Scan(&sum.StreakCount, &sum.BreakCount)
	if err != nil {
		return sum, fmt.Errorf("%w: summarize records: %w", models.ErrStorageUnavailable, err)
	}
	sum.Total = sum.StreakCount + sum.BreakCount
	return sum, nil
}
