package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mkozlov/userd/internal/middleware"
	"github.com/mkozlov/userd/internal/models"
	"github.com/mkozlov/userd/internal/service"
)

// UserService defines the interface for user profile operations
// required by the UserHandler.
type UserService interface {
	// GetByUsername returns the active user with the given username.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// List returns a page of active users, optionally filtered by exact username.
	List(ctx context.Context, username string, page, limit int) ([]models.User, error)
	// UpdateDescription replaces the description of the given user.
	UpdateDescription(ctx context.Context, username, description string) (*models.User, error)
	// Delete soft-deletes the given user and revokes their session.
	Delete(ctx context.Context, username string) error
}

// UserHandler handles HTTP requests for user profiles. All of its routes
// sit behind the token authentication middleware.
type UserHandler struct {
	UserService UserService
}

// UpdateRequest represents the JSON payload for a description update.
type UpdateRequest struct {
	Description string `json:"description"`
}

// List handles GET /user. Query parameters: username (exact filter),
// page and limit (1-based, defaulting to 1 and 10).
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	users, err := h.UserService.List(r.Context(), q.Get("username"), page, limit)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(users)
}

// GetSelf handles GET /user/my, returning the authenticated user's profile.
func (h *UserHandler) GetSelf(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsernameFromContext(r.Context())

	user, err := h.UserService.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}

// UpdateSelf handles PATCH /user/my, replacing the authenticated user's description.
func (h *UserHandler) UpdateSelf(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsernameFromContext(r.Context())

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := validateDescription(req.Description); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.UserService.UpdateDescription(r.Context(), username, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}

// DeleteSelf handles DELETE /user/my, soft-deleting the authenticated user.
// The session marker is revoked along with the account, so the caller's
// still-unexpired access token stops working immediately.
func (h *UserHandler) DeleteSelf(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsernameFromContext(r.Context())

	if err := h.UserService.Delete(r.Context(), username); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "User successfully deleted",
	})
}
