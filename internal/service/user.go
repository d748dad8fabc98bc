package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkozlov/userd/internal/models"
)

// UserService implements profile reads and mutations for active users.
type UserService struct {
	repo     UserRepository
	sessions SessionCache
}

// NewUserService constructs a UserService using the provided repository and
// session cache. The cache is needed so deleting an account also revokes
// its live session.
func NewUserService(repo UserRepository, sessions SessionCache) *UserService {
	return &UserService{repo: repo, sessions: sessions}
}

// GetByUsername returns the active user with the given username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// List returns a page of active users, optionally filtered by exact username.
// Non-positive page or limit fall back to the defaults 1 and 10.
func (s *UserService) List(ctx context.Context, username string, page, limit int) ([]models.User, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.repo.List(ctx, username, page, limit)
}

// UpdateDescription replaces the description of the given user.
func (s *UserService) UpdateDescription(ctx context.Context, username, description string) (*models.User, error) {
	user, err := s.repo.UpdateDescription(ctx, username, description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update description: %w", err)
	}
	return user, nil
}

// Delete soft-deletes the given user and revokes their session marker so the
// account's still-unexpired tokens stop working immediately.
func (s *UserService) Delete(ctx context.Context, username string) error {
	if err := s.repo.SoftDelete(ctx, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return s.sessions.Delete(ctx, username)
}
