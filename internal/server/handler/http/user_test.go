package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkozlov/userd/internal/middleware"
	"github.com/mkozlov/userd/internal/models"
	"github.com/mkozlov/userd/internal/service"
)

// fakeUserService implements UserService for testing.
type fakeUserService struct {
	getUser    *models.User
	getErr     error
	listUsers  []models.User
	listErr    error
	updateUser *models.User
	updateErr  error
	deleteErr  error

	listUsername string
	listPage     int
	listLimit    int
	deleted      string
}

func (f *fakeUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return f.getUser, f.getErr
}

func (f *fakeUserService) List(ctx context.Context, username string, page, limit int) ([]models.User, error) {
	f.listUsername, f.listPage, f.listLimit = username, page, limit
	return f.listUsers, f.listErr
}

func (f *fakeUserService) UpdateDescription(ctx context.Context, username, description string) (*models.User, error) {
	return f.updateUser, f.updateErr
}

func (f *fakeUserService) Delete(ctx context.Context, username string) error {
	f.deleted = username
	return f.deleteErr
}

func authedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBuffer(body))
	}
	return req.WithContext(middleware.ContextWithUsername(req.Context(), "alice"))
}

func TestUserHandler_List(t *testing.T) {
	svc := &fakeUserService{
		listUsers: []models.User{{ID: "u-1", Username: "alice"}},
	}
	h := &UserHandler{UserService: svc}

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest("GET", "/user?username=alice&page=2&limit=5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.listUsername != "alice" || svc.listPage != 2 || svc.listLimit != 5 {
		t.Errorf("List received (%q, %d, %d); want (alice, 2, 5)",
			svc.listUsername, svc.listPage, svc.listLimit)
	}

	var users []models.User
	if err := json.NewDecoder(rec.Body).Decode(&users); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(users) != 1 || users[0].Username != "alice" {
		t.Errorf("unexpected users: %+v", users)
	}
}

func TestUserHandler_List_EmptyIsArray(t *testing.T) {
	h := &UserHandler{UserService: &fakeUserService{}}

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest("GET", "/user", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := bytes.TrimSpace(rec.Body.Bytes()); !bytes.Equal(got, []byte("[]")) {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}

func TestUserHandler_GetSelf(t *testing.T) {
	tests := []struct {
		name         string
		service      *fakeUserService
		expectedCode int
	}{
		{
			name:         "found",
			service:      &fakeUserService{getUser: &models.User{ID: "u-1", Username: "alice", PasswordHash: "secret"}},
			expectedCode: http.StatusOK,
		},
		{
			name:         "not found",
			service:      &fakeUserService{getErr: service.ErrUserNotFound},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &UserHandler{UserService: tt.service}
			rec := httptest.NewRecorder()
			h.GetSelf(rec, authedRequest("GET", "/user/my", nil))

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if tt.expectedCode == http.StatusOK {
				if bytes.Contains(rec.Body.Bytes(), []byte("secret")) {
					t.Error("password hash must never appear in a response")
				}
			}
		})
	}
}

func TestUserHandler_UpdateSelf(t *testing.T) {
	updated := &models.User{ID: "u-1", Username: "alice", Description: "new bio"}

	tests := []struct {
		name         string
		body         string
		service      *fakeUserService
		expectedCode int
	}{
		{
			name:         "invalid JSON",
			body:         `not a json`,
			service:      &fakeUserService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "empty description",
			body:         `{"description":""}`,
			service:      &fakeUserService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "success",
			body:         `{"description":"new bio"}`,
			service:      &fakeUserService{updateUser: updated},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &UserHandler{UserService: tt.service}
			rec := httptest.NewRecorder()
			h.UpdateSelf(rec, authedRequest("PATCH", "/user/my", []byte(tt.body)))

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}

func TestUserHandler_DeleteSelf(t *testing.T) {
	svc := &fakeUserService{}
	h := &UserHandler{UserService: svc}

	rec := httptest.NewRecorder()
	h.DeleteSelf(rec, authedRequest("DELETE", "/user/my", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.deleted != "alice" {
		t.Errorf("Delete received username = %q; want %q", svc.deleted, "alice")
	}
}
