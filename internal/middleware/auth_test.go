package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"mfin-backend/internal/auth"
	"mfin-backend/internal/models"
)

type memUserGetter struct {
	users map[string]models.User
}

func (m *memUserGetter) Get(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found: %s", id)
	}
	return &u, nil
}

func newTestSessionMiddleware() *SessionMiddleware {
	return NewSessionMiddleware(&memUserGetter{users: map[string]models.User{
		"USR001": {ID: "USR001", Username: "admin", Role: models.RoleAdmin},
		"USR002": {ID: "USR002", Username: "meena", Role: models.RoleAgent},
	}})
}

func TestAuthenticateRequiresCookie(t *testing.T) {
	m := newTestSessionMiddleware()
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a session")
	}))

	req := httptest.NewRequest("GET", "/api/loans", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticatePopulatesContext(t *testing.T) {
	m := newTestSessionMiddleware()
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := GetUserIDFromContext(r.Context())
		username, _ := GetUsernameFromContext(r.Context())
		role, _ := GetRoleFromContext(r.Context())
		if id != "USR002" || username != "meena" || role != models.RoleAgent {
			t.Errorf("context not populated: %s/%s/%s", id, username, role)
		}
	}))

	req := httptest.NewRequest("GET", "/api/loans", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "USR002"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticateRejectsUnknownUser(t *testing.T) {
	m := newTestSessionMiddleware()
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/api/loans", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "USR999"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	m := newTestSessionMiddleware()
	handler := m.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("POST", "/api/users", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "USR002"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("agent: expected 403, got %d", rec.Code)
	}

	req = httptest.NewRequest("POST", "/api/users", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "USR001"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", rec.Code)
	}
}
