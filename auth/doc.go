// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and token utilities.

# Passwords

Passwords are hashed with bcrypt, which salts each hash:

	hash, err := auth.HashPassword(password, bcrypt.DefaultCost)
	err := auth.CheckPassword(hash, password)

CheckPassword returns ErrPasswordMismatch for any failure, including a
malformed stored hash.

# Session Tokens

Session tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateSessionToken()

Tokens are URL-safe base64 encoded without padding. Clients send them as
"Authorization: Bearer <token>"; BearerToken parses that header.

# Token Hashing

The store never sees a raw token:

	key := auth.HashToken(token, secret)

HashToken is HMAC-SHA256 keyed by the server's session secret, so the same
token always maps to the same row.

# IP Hashing

For privacy-preserving session auditing:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
