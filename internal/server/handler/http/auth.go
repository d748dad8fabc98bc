// Package http provides HTTP handlers for authentication and user management.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkozlov/userd/internal/middleware"
	"github.com/mkozlov/userd/internal/models"
	"github.com/mkozlov/userd/internal/service"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new user account with a hashed password.
	Register(ctx context.Context, username, email string, age int, description, password string) (*models.User, error)
	// Login verifies credentials, establishes the session and issues a token pair.
	Login(ctx context.Context, username, password string) (*models.TokenPair, error)
	// Logout revokes the session marker for the given username.
	Logout(ctx context.Context, username string) error
}

// AuthHandler handles HTTP requests for registration, login and logout.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// RegisterRequest represents the JSON payload for user registration.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Age         int    `json:"age"`
	Description string `json:"description"`
	Password    string `json:"password"`
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /auth/register.
// It validates the payload, creates the account and immediately logs the
// new user in, responding 201 with the initial token pair.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := validateRegister(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Username, req.Email, req.Age, req.Description, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			http.Error(w, "username already in use", http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// Chain into login so the client starts with a live session.
	pair, err := h.AuthService.Login(r.Context(), user.Username, req.Password)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(pair)
}

// Login handles POST /auth/login.
// Bad credentials always yield the same generic 401, whether the username
// is unknown or the password is wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	pair, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(pair)
}

// Logout handles GET /auth/logout. The route is gated by the token
// authentication middleware, which put the username into the context.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsernameFromContext(r.Context())

	if err := h.AuthService.Logout(r.Context(), username); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "User successfully logged out",
	})
}
