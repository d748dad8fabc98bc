// Package service provides business-logic services for authentication and
// user management, delegating persistence to repository interfaces.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mkozlov/userd/internal/models"
)

// UserRepository defines the persistence operations required by the services.
type UserRepository interface {
	// FindByUsername fetches the active user with the given username.
	// Returns sql.ErrNoRows when no active user exists.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// List returns a page of active users, optionally filtered by exact username.
	List(ctx context.Context, username string, page, limit int) ([]models.User, error)
	// UpdateDescription replaces the description of the given active user.
	UpdateDescription(ctx context.Context, username, description string) (*models.User, error)
	// SoftDelete marks the given active user as deleted.
	SoftDelete(ctx context.Context, username string) error
}

// SessionCache defines the session marker operations required by the AuthService.
// A marker's presence is what keeps a login session alive.
type SessionCache interface {
	// Set establishes or refreshes the session marker for username.
	Set(ctx context.Context, username string) error
	// Delete revokes the session marker. Absent markers are not an error.
	Delete(ctx context.Context, username string) error
}

// PasswordHasher defines the credential hashing operations required by the services.
type PasswordHasher interface {
	// Hash returns a storable digest of the password.
	Hash(password string) (string, error)
	// Verify reports whether password matches the stored digest.
	Verify(password, digest string) (bool, error)
}

// TokenIssuer defines the token issuance operations required by the AuthService.
type TokenIssuer interface {
	// IssueAccessToken signs a short-lived access token for the user.
	IssueAccessToken(userID, username string) (string, error)
	// IssueRefreshToken signs a longer-lived refresh token for the user.
	IssueRefreshToken(userID, username string) (string, error)
}

// AuthService implements credential verification, login and logout.
type AuthService struct {
	repo     UserRepository
	sessions SessionCache
	hasher   PasswordHasher
	issuer   TokenIssuer
}

// NewAuthService constructs an AuthService from its collaborators.
func NewAuthService(repo UserRepository, sessions SessionCache, hasher PasswordHasher, issuer TokenIssuer) *AuthService {
	return &AuthService{repo: repo, sessions: sessions, hasher: hasher, issuer: issuer}
}

// ValidateCredentials looks up the user and checks the password against the
// stored digest. Both an unknown username and a wrong password yield
// ErrInvalidCredentials; other failures propagate unchanged.
func (s *AuthService) ValidateCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login validates the credentials, issues a fresh token pair and establishes
// the session marker that makes the pair usable. Every successful login
// refreshes the marker; concurrent logins for the same user do not conflict.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	user, err := s.ValidateCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}

	access, err := s.issuer.IssueAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.issuer.IssueRefreshToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	if err := s.sessions.Set(ctx, user.Username); err != nil {
		return nil, fmt.Errorf("set session marker: %w", err)
	}

	return &models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Register creates a new user with a hashed password. Registering a username
// held by an active account fails with ErrUserExists; soft-deleted accounts
// do not block the name. The caller chains into Login for the initial pair.
func (s *AuthService) Register(ctx context.Context, username, email string, age int, description, password string) (*models.User, error) {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		Age:          age,
		Description:  description,
		PasswordHash: digest,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout revokes the session marker for username. Idempotent: logging out
// an already-revoked session succeeds.
func (s *AuthService) Logout(ctx context.Context, username string) error {
	return s.sessions.Delete(ctx, username)
}
