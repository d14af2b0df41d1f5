// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/streakbreak/auth"
	"github.com/danielhkuo/streakbreak/cliparse"
	"github.com/danielhkuo/streakbreak/db"
	"github.com/danielhkuo/streakbreak/models"
)

// PostgresURLEnv names the variable that switches tests to PostgreSQL
const PostgresURLEnv = "STREAKBREAK_TEST_POSTGRES_URL"

// SetupTestDB creates a fresh test database with the full schema.
// SQLite in a temp dir by default, PostgreSQL when PostgresURLEnv is set.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()

	if pgURL := os.Getenv(PostgresURLEnv); pgURL != "" {
		conn, err := db.Open(ctx, db.TypePostgres, pgURL)
		if err != nil {
			t.Fatalf("Failed to open test database: %v", err)
		}

		// Clean up tables before each test
		_, err = conn.Exec(`
			DROP TABLE IF EXISTS session CASCADE;
			DROP TABLE IF EXISTS activity_record CASCADE;
			DROP TABLE IF EXISTS account CASCADE;
		`)
		if err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}

		if err := db.CreateSchema(ctx, conn); err != nil {
			t.Fatalf("Failed to create schema: %v", err)
		}
		return conn
	}

	url := "file:" + filepath.Join(t.TempDir(), "streakbreak_test.db")
	conn, err := db.Open(ctx, db.TypeSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.CreateSchema(ctx, conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  db.TypeSQLite,
		SessionSecret: "test-session-secret",
		SessionTTL:    time.Hour,
		Timezone:      "UTC",
		AuthRateLimit: 1000,
		AuthRateBurst: 1000,
		BcryptCost:    bcrypt.MinCost,
	}
}

// CreateTestAccount inserts an account with the given password and zero counters
func CreateTestAccount(t *testing.T, conn *sql.DB, username, password string) *models.Account {
	t.Helper()

	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	acct := &models.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = conn.Exec(`
		INSERT INTO account (id, username, password_hash, streak_count, break_count, created_at)
		VALUES ($1, $2, $3, 0, 0, $4)
	`, acct.ID, acct.Username, acct.PasswordHash, acct.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return acct
}

// CreateTestSession stores a session for the account and returns the bearer token
func CreateTestSession(t *testing.T, conn *sql.DB, cfg cliparse.Config, accountID string, expiresAt time.Time) string {
	t.Helper()

	token, err := auth.GenerateSessionToken()
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO session (token_hash, account_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, auth.HashToken(token, cfg.SessionSecret), accountID, time.Now().UTC(), expiresAt.UTC())
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return token
}

// CountRecords returns how many records an account has, optionally for one action
func CountRecords(t *testing.T, conn *sql.DB, accountID string, action models.Action) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM activity_record WHERE account_id = $1"
	args := []any{accountID}
	if action != "" {
		query += " AND action = $2"
		args = append(args, string(action))
	}

	var n int
	if err := conn.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count records: %v", err)
	}
	return n
}

// GetCounters reads the stored streak and break counters
func GetCounters(t *testing.T, conn *sql.DB, accountID string) (streaks, breaks int) {
	t.Helper()

	err := conn.QueryRow(`
		SELECT streak_count, break_count FROM account WHERE id = $1
	`, accountID).Scan(&streaks, &breaks)
	if err != nil {
		t.Fatalf("Failed to read counters: %v", err)
	}
	return streaks, breaks
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// BearerHeader builds the Authorization header for a session token
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
