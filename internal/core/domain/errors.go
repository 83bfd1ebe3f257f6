package domain

import (
	"errors"
	"time"
)

var (
	// ErrValidation marks missing or malformed client input.
	ErrValidation = errors.New("missing required fields")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password, so
	// callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned on profile or account lookups that miss.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoToken is returned when a protected operation receives no token.
	ErrNoToken = errors.New("missing authorization token")
	// ErrInvalidToken covers bad signatures and malformed payloads.
	ErrInvalidToken = errors.New("invalid token")
)

// TokenExpiredError signals that an otherwise well-formed access token has
// passed its expiry. It is distinct from ErrInvalidToken so clients know to
// refresh instead of re-authenticating.
type TokenExpiredError struct {
	ExpiredAt time.Time
}

func (e *TokenExpiredError) Error() string {
	return "token expired"
}
