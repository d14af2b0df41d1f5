// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger records daily streak and break actions.

# Recording

	rec, acct, err := l.RecordAction(ctx, accountID, "streak", "2024-01-01")

An account gets at most one record per calendar day. A second attempt for
the same day fails with models.ErrAlreadyRecorded whatever the action. The
existence check before the insert is only a fast path: the UNIQUE
(account_id, day) constraint decides races, and its violation is reported
as the same error.

The insert and the counter update share a transaction, and the counter is
bumped with a single UPDATE ... SET n = n + 1, so account counters always
equal the number of records of each action.

# Calendar Days

Dates are normalized to YYYY-MM-DD in one location fixed at construction
(UTC unless configured). Accepted input:

  - "" (today in the ledger's location)
  - "2024-01-01"
  - RFC 3339 timestamps, converted into the ledger's location

Past and future days are accepted. Limiting clients to today is their policy.

# Reading

ListRecords returns records for a calendar view, optionally bounded.
Summary recounts records by action without touching the stored counters.

# Metrics

Collectors exposes ledger_actions_recorded_total{action} and
ledger_actions_rejected_total{reason} for Prometheus registration.
*/
package ledger
