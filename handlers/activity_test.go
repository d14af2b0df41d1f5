// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/streakbreak/middleware"
	"github.com/danielhkuo/streakbreak/models"
	"github.com/danielhkuo/streakbreak/testutil"
)

// record posts an action as the session's account
func (e *testEnv) record(t *testing.T, token string, req models.RecordActionRequest) *httptest.ResponseRecorder {
	t.Helper()

	h := middleware.RequireSession(e.accounts, e.activity.RecordAction)
	w := httptest.NewRecorder()
	h(w, testutil.MakeRequest("POST", "/activity", req, testutil.BearerHeader(token)))
	return w
}

func TestRecordAction_Streak(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "pw1")

	w := env.record(t, alice.Token, models.RecordActionRequest{Action: "streak", Date: "2024-01-01"})
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.RecordActionResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Record.Date != "2024-01-01" {
		t.Errorf("Expected date 2024-01-01, got %s", resp.Record.Date)
	}
	if resp.Record.Action != models.ActionStreak {
		t.Errorf("Expected action streak, got %s", resp.Record.Action)
	}
	if resp.Record.AccountID != alice.Account.ID {
		t.Errorf("Expected record for %s, got %s", alice.Account.ID, resp.Record.AccountID)
	}
	if resp.Account.StreakCount != 1 || resp.Account.BreakCount != 0 {
		t.Errorf("Expected streaks=1 breaks=0, got streaks=%d breaks=%d", resp.Account.StreakCount, resp.Account.BreakCount)
	}
}

func TestRecordAction_SecondSameDayRejected(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "pw1")

	w := env.record(t, alice.Token, models.RecordActionRequest{Action: "streak", Date: "2024-01-01"})
	testutil.AssertStatus(t, w, http.StatusOK)

	w = env.record(t, alice.Token, models.RecordActionRequest{Action: "break", Date: "2024-01-01"})
	testutil.AssertStatus(t, w, http.StatusConflict)

	streaks, breaks := testutil.GetCounters(t, env.db, alice.Account.ID)
	if streaks != 1 || breaks != 0 {
		t.Errorf("Expected counters unchanged at 1/0, got %d/%d", streaks, breaks)
	}
	if n := testutil.CountRecords(t, env.db, alice.Account.ID, ""); n != 1 {
		t.Errorf("Expected 1 record, got %d", n)
	}
}

func TestRecordAction_NextDayBreak(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "pw1")

	env.record(t, alice.Token, models.RecordActionRequest{Action: "streak", Date: "2024-01-01"})
	w := env.record(t, alice.Token, models.RecordActionRequest{Action: "break", Date: "2024-01-02"})
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.RecordActionResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Account.StreakCount != 1 || resp.Account.BreakCount != 1 {
		t.Errorf("Expected streaks=1 breaks=1, got streaks=%d breaks=%d", resp.Account.StreakCount, resp.Account.BreakCount)
	}
}

func TestRecordAction_InvalidAction(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "pw1")

	for _, action := range []string{"skip", "", "streaks", "STREAK", " break"} {
		t.Run("action="+action, func(t *testing.T) {
			w := env.record(t, alice.Token, models.RecordActionRequest{Action: action, Date: "2024-01-01"})
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}

	if n := testutil.CountRecords(t, env.db, alice.Account.ID, ""); n != 0 {
		t.Errorf("Expected no records, got %d", n)
	}
}

func TestRecordAction_InvalidDate(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "pw1")

	w := env.record(t, alice.Token, models.RecordActionRequest{Action: "streak", Date: "01/02/2024"})
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestRecordAction_DefaultsToToday(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "pw1")

	w := env.record(t, alice.Token, models.RecordActionRequest{Action: "streak"})
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.RecordActionResponse
	testutil.AssertJSON(t, w, &resp)

	today := time.Now().UTC().Format(models.DayLayout)
	if resp.Record.Date != today {
		t.Errorf("Expected date %s, got %s", today, resp.Record.Date)
	}
}

func TestRecordAction_UserIDMismatch(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "pw1")
	bob := env.register(t, "bob", "pw2")

	w := env.record(t, alice.Token, models.RecordActionRequest{
		UserID: bob.Account.ID,
		Action: "streak",
		Date:   "2024-01-01",
	})
	testutil.AssertStatus(t, w, http.StatusForbidden)

	if n := testutil.CountRecords(t, env.db, bob.Account.ID, ""); n != 0 {
		t.Errorf("Expected no records for bob, got %d", n)
	}

	// The camelCase key is checked too
	w = env.record(t, alice.Token, models.RecordActionRequest{
		UserIDCamel: bob.Account.ID,
		Action:      "streak",
		Date:        "2024-01-01",
	})
	testutil.AssertStatus(t, w, http.StatusForbidden)

	if n := testutil.CountRecords(t, env.db, bob.Account.ID, ""); n != 0 {
		t.Errorf("Expected no records for bob, got %d", n)
	}
	if n := testutil.CountRecords(t, env.db, alice.Account.ID, ""); n != 0 {
		t.Errorf("Expected no records for alice, got %d", n)
	}

	// Matching user_id is accepted
	w = env.record(t, alice.Token, models.RecordActionRequest{
		UserID: alice.Account.ID,
		Action: "streak",
		Date:   "2024-01-01",
	})
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestRecordAction_NoSession(t *testing.T) {
	env := newTestEnv(t)

	h := middleware.RequireSession(env.accounts, env.activity.RecordAction)
	w := httptest.NewRecorder()
	h(w, testutil.MakeRequest("POST", "/activity", models.RecordActionRequest{Action: "streak"}, nil))

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestRecordAction_AccountsIndependent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "pw1")
	bob := env.register(t, "bob", "pw2")

	testutil.AssertStatus(t, env.record(t, alice.Token, models.RecordActionRequest{Action: "streak", Date: "2024-01-01"}), http.StatusOK)
	testutil.AssertStatus(t, env.record(t, bob.Token, models.RecordActionRequest{Action: "break", Date: "2024-01-01"}), http.StatusOK)

	as, ab := testutil.GetCounters(t, env.db, alice.Account.ID)
	bs, bb := testutil.GetCounters(t, env.db, bob.Account.ID)
	if as != 1 || ab != 0 {
		t.Errorf("alice: expected 1/0, got %d/%d", as, ab)
	}
	if bs != 0 || bb != 1 {
		t.Errorf("bob: expected 0/1, got %d/%d", bs, bb)
	}
}

func TestListRecords(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "pw1")

	for _, day := range []string{"2024-01-03", "2024-01-01", "2024-01-02"} {
		testutil.AssertStatus(t, env.record(t, alice.Token, models.RecordActionRequest{Action: "streak", Date: day}), http.StatusOK)
	}

	list := middleware.RequireSession(env.accounts, env.activity.ListRecords)

	t.Run("all", func(t *testing.T) {
		w := httptest.NewRecorder()
		list(w, testutil.MakeRequest("GET", "/activity", nil, testutil.BearerHeader(alice.Token)))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ListRecordsResponse
		testutil.AssertJSON(t, w, &resp)

		if len(resp.Records) != 3 {
			t.Fatalf("Expected 3 records, got %d", len(resp.Records))
		}
		if resp.Records[0].Date != "2024-01-01" || resp.Records[2].Date != "2024-01-03" {
			t.Errorf("Expected records ordered by day, got %s..%s", resp.Records[0].Date, resp.Records[2].Date)
		}
	})

	t.Run("range", func(t *testing.T) {
		w := httptest.NewRecorder()
		list(w, testutil.MakeRequest("GET", "/activity?from=2024-01-02&to=2024-01-02", nil, testutil.BearerHeader(alice.Token)))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ListRecordsResponse
		testutil.AssertJSON(t, w, &resp)

		if len(resp.Records) != 1 || resp.Records[0].Date != "2024-01-02" {
			t.Errorf("Expected only 2024-01-02, got %+v", resp.Records)
		}
	})

	t.Run("bad bound", func(t *testing.T) {
		w := httptest.NewRecorder()
		list(w, testutil.MakeRequest("GET", "/activity?from=yesterday", nil, testutil.BearerHeader(alice.Token)))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestListRecords_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "pw1")

	list := middleware.RequireSession(env.accounts, env.activity.ListRecords)
	w := httptest.NewRecorder()
	list(w, testutil.MakeRequest("GET", "/activity", nil, testutil.BearerHeader(alice.Token)))

	testutil.AssertStatus(t, w, http.StatusOK)
	if got := w.Body.String(); got != "{\"records\":[]}\n" {
		t.Errorf("Expected empty records array, got %q", got)
	}
}

func TestSummary(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "pw1")

	env.record(t, alice.Token, models.RecordActionRequest{Action: "streak", Date: "2024-01-01"})
	env.record(t, alice.Token, models.RecordActionRequest{Action: "streak", Date: "2024-01-02"})
	env.record(t, alice.Token, models.RecordActionRequest{Action: "break", Date: "2024-01-03"})

	summary := middleware.RequireSession(env.accounts, env.activity.Summary)
	w := httptest.NewRecorder()
	summary(w, testutil.MakeRequest("GET", "/activity/summary", nil, testutil.BearerHeader(alice.Token)))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SummaryResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.StreakCount != 2 || resp.BreakCount != 1 || resp.Total != 3 {
		t.Errorf("Expected 2/1/3, got %+v", resp)
	}
}
