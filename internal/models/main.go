// Package models defines the core data structures for users and issued tokens.
package models

// User represents an application user account.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Username is the login name chosen by the user, unique among active accounts.
	Username string `json:"username"`
	// Email is the user's contact address.
	Email string `json:"email"`
	// Age is the self-reported age of the user.
	Age int `json:"age"`
	// Description is free-form profile text.
	Description string `json:"description"`
	// PasswordHash is the peppered bcrypt digest of the user's password.
	// Excluded from JSON so it can never leak into a response body.
	PasswordHash string `json:"-"`
}

// TokenPair carries the access and refresh tokens issued on login and registration.
type TokenPair struct {
	// AccessToken is the short-lived credential presented on protected requests.
	AccessToken string `json:"accessToken"`
	// RefreshToken is the longer-lived credential used to obtain a new pair.
	RefreshToken string `json:"refreshToken"`
}
