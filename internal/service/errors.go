package service

import "errors"

// Sentinel errors the handlers map to HTTP status codes.
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The two are deliberately indistinguishable to callers so
	// that login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when registering a username that is
	// already taken by an active account.
	ErrUserExists = errors.New("username already in use")
	// ErrUserNotFound is returned when a read or update targets a
	// username with no active account.
	ErrUserNotFound = errors.New("user not found")
)
