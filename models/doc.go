// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CredentialsRequest: username, password
  - RecordActionRequest: action, date (optional), user_id (optional)

# Response Types

Types for JSON responses:

  - AuthResponse: account, token, expires_at
  - AccountResponse: account
  - RecordActionResponse: record, account
  - ListRecordsResponse: records
  - SummaryResponse: streak_count, break_count, total
  - ErrorResponse: error, message

# Domain Types

  - Account: credentials and lifetime counters (password hash never serialized)
  - ActivityRecord: one action on one calendar day

# Actions

The action set is closed:

	ActionStreak = "streak"
	ActionBreak  = "break"

ParseAction is the only way client input becomes an Action.

Calendar days use DayLayout ("2006-01-02").
*/
package models
