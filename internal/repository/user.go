// Package repository provides persistence implementations for the user store
// and the session cache.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkozlov/userd/internal/models"
)

// PostgresUserRepository implements user persistence against a PostgreSQL database.
// Soft-deleted rows are retained but excluded from every query here.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the given
// database connection. db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// FindByUsername fetches the active user with the given username.
// Returns sql.ErrNoRows when no active user exists.
func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, email, age, description, password_hash FROM users
		WHERE username = $1 AND deleted_at IS NULL
	`, username).Scan(&u.ID, &u.Username, &u.Email, &u.Age, &u.Description, &u.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user row.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, username, email, age, description, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Username, user.Email, user.Age, user.Description, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// List returns a page of active users, optionally filtered by exact username.
// page and limit are 1-based; callers are expected to pass sane defaults.
func (r *PostgresUserRepository) List(ctx context.Context, username string, page, limit int) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, username, email, age, description FROM users
		WHERE deleted_at IS NULL AND ($1 = '' OR username = $1)
		ORDER BY username
		LIMIT $2 OFFSET $3
	`, username, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Age, &u.Description); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateDescription replaces the description of the active user with the
// given username. Returns sql.ErrNoRows when no active user matches.
func (r *PostgresUserRepository) UpdateDescription(ctx context.Context, username, description string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		UPDATE users SET description = $2
		WHERE username = $1 AND deleted_at IS NULL
		RETURNING id, username, email, age, description
	`, username, description).Scan(&u.ID, &u.Username, &u.Email, &u.Age, &u.Description)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SoftDelete marks the active user with the given username as deleted.
// The row is retained for the purger; it disappears from all lookups here.
// Returns sql.ErrNoRows when no active user matches.
func (r *PostgresUserRepository) SoftDelete(ctx context.Context, username string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET deleted_at = NOW()
		WHERE username = $1 AND deleted_at IS NULL
	`, username)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
