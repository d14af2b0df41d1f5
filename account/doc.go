// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package account manages accounts, credentials, and sessions.

	svc := account.NewService(db, cfg)
	acct, err := svc.Register(ctx, "alice", "pw1")
	acct, err := svc.Login(ctx, "alice", "pw1")

Register stores a bcrypt hash and zeroed counters. Login returns
models.ErrInvalidCredentials whether the username or the password was
wrong, and spends one bcrypt comparison either way.

# Sessions

	token, expiresAt, err := svc.CreateSession(ctx, acct.ID, ip, userAgent)
	accountID, err := svc.Authenticate(ctx, token)
	err := svc.Revoke(ctx, token)

Sessions are keyed by an HMAC of the token (see auth.HashToken), expire
after cfg.SessionTTL, and are purged by RunSessionJanitor.
*/
package account
