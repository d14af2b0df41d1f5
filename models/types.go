package models

import (
	"fmt"
	"time"
)

// Action is what an account records for a day.
type Action string

const (
	ActionStreak Action = "streak"
	ActionBreak  Action = "break"
)

// ErrUnknownAction is returned by ParseAction for anything outside the enum
var ErrUnknownAction = fmt.Errorf("action must be %q or %q", ActionStreak, ActionBreak)

// ParseAction validates a client supplied action. Only the exact lowercase
// values are accepted.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionStreak:
		return ActionStreak, nil
	case ActionBreak:
		return ActionBreak, nil
	}
	return "", ErrUnknownAction
}

// Column is the account counter this action increments.
func (a Action) Column() string {
	if a == ActionBreak {
		return "break_count"
	}
	return "streak_count"
}

// DayLayout is the canonical calendar day format
const DayLayout = "2006-01-02"

// Request types

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserID is optional; when present under either key it must match the
// session's account.
type RecordActionRequest struct {
	UserID      string `json:"user_id,omitempty"`
	UserIDCamel string `json:"userId,omitempty"`
	Action      string `json:"action"`
	Date        string `json:"date,omitempty"`
}

// ClaimedUserIDs returns the non-empty user ids the body names
func (r RecordActionRequest) ClaimedUserIDs() []string {
	var ids []string
	for _, id := range []string{r.UserID, r.UserIDCamel} {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Response types

type AuthResponse struct {
	Account   Account   `json:"account"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AccountResponse struct {
	Account Account `json:"account"`
}

type RecordActionResponse struct {
	Record  ActivityRecord `json:"record"`
	Account Account        `json:"account"`
}

type ListRecordsResponse struct {
	Records []ActivityRecord `json:"records"`
}

type SummaryResponse struct {
	StreakCount int `json:"streak_count"`
	BreakCount  int `json:"break_count"`
	Total       int `json:"total"`
}

// Domain types

type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	StreakCount  int       `json:"streak_count"`
	BreakCount   int       `json:"break_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type ActivityRecord struct {
	ID        string    `json:"id"`
	AccountID string    `json:"user_id"`
	Date      string    `json:"date"` // "2024-01-01"
	Action    Action    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
