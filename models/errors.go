package models

import "errors"

// Errors returned by the account and ledger services. Callers wrap them with
// detail via fmt.Errorf("%w: ...") and match with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidAction      = errors.New("invalid action")
	ErrAlreadyRecorded    = errors.New("already recorded today")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrAccountNotFound    = errors.New("account not found")
)
