package services

import "errors"

// Business errors returned by the services. Handlers translate these into the
// HTTP envelope; anything not in this list is treated as a store failure and
// surfaced as a generic 500.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNoTierConfigured    = errors.New("no commission tier configured")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUserInactive        = errors.New("user is not active")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenNotFound       = errors.New("token not found")
	ErrUsernameTaken       = errors.New("username already exists")
)
