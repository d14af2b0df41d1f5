// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/streakbreak/cliparse"
	"github.com/danielhkuo/streakbreak/models"
	"github.com/danielhkuo/streakbreak/testutil"
)

func newTestRouter(t *testing.T, cfg cliparse.Config) (*http.ServeMux, *sql.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		db.Close()
	})

	return NewRouter(ctx, db, cfg), db
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "streakbreak API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Error("Expected Go runtime metrics in /metrics output")
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _ := newTestRouter(t, testutil.GetTestConfig())

	// 400 and 401 are valid here; only 405 means the route is missing
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/metrics"},

		{"POST", "/auth/register"},
		{"POST", "/auth/login"},
		{"POST", "/auth/logout"},
		{"GET", "/accounts/me"},

		{"POST", "/activity"},
		{"GET", "/activity"},
		{"GET", "/activity/summary"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := newTestRouter(t, testutil.GetTestConfig())

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"GET", "/auth/login"},
		{"DELETE", "/activity"},
		{"POST", "/activity/summary"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestUnknownPathNotFound(t *testing.T) {
	mux, _ := newTestRouter(t, testutil.GetTestConfig())

	for _, path := range []string{"/does-not-exist", "/activity/nope", "/auth"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest("GET", path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Errorf("Expected 404 for GET %s, got %d", path, w.Code)
			}
			if strings.Contains(w.Body.String(), "streakbreak API v1") {
				t.Errorf("GET %s fell through to the root handler", path)
			}
		})
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	mux, _ := newTestRouter(t, testutil.GetTestConfig())

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/auth/logout"},
		{"GET", "/accounts/me"},
		{"POST", "/activity"},
		{"GET", "/activity"},
		{"GET", "/activity/summary"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := testutil.MakeRequest(tc.method, tc.path, nil, testutil.BearerHeader("not-a-real-token"))
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}
}

func TestAuthRateLimited(t *testing.T) {
	cfg := testutil.GetTestConfig()
	cfg.AuthRateLimit = 0.001
	cfg.AuthRateBurst = 2
	mux, _ := newTestRouter(t, cfg)

	var last int
	for i := 0; i < 3; i++ {
		req := testutil.MakeRequest("POST", "/auth/login", models.CredentialsRequest{Username: "x", Password: "y"}, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		last = w.Code
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after burst is spent, got %d", last)
	}
}

func TestRegisterAndRecordThroughRouter(t *testing.T) {
	mux, db := newTestRouter(t, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/auth/register", models.CredentialsRequest{Username: "alice", Password: "pw1"}, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var auth models.AuthResponse
	testutil.AssertJSON(t, w, &auth)

	req = testutil.MakeRequest("POST", "/activity", models.RecordActionRequest{Action: "streak", Date: "2024-01-01"}, testutil.BearerHeader(auth.Token))
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	streaks, breaks := testutil.GetCounters(t, db, auth.Account.ID)
	if streaks != 1 || breaks != 0 {
		t.Errorf("Expected 1/0, got %d/%d", streaks, breaks)
	}
}
