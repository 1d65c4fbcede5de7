package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mfin-backend/internal/auth"
	"mfin-backend/internal/models"
	"mfin-backend/internal/services"
)

type memUserStore struct {
	users []models.User
}

func (m *memUserStore) All(ctx context.Context) ([]models.User, error) {
	return append([]models.User(nil), m.users...), nil
}

func (m *memUserStore) Get(ctx context.Context, id string) (*models.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for i := range m.users {
		if strings.EqualFold(m.users[i].Username, username) {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) Mutate(ctx context.Context, fn func([]models.User) ([]models.User, error)) ([]models.User, error) {
	working := append([]models.User(nil), m.users...)
	mutated, err := fn(working)
	if err != nil {
		return nil, err
	}
	m.users = mutated
	return mutated, nil
}

func newSessionTestHandler() *SessionHandler {
	store := &memUserStore{users: []models.User{
		{ID: "USR001", Username: "meena", Password: "pass123", Role: models.RoleAdmin},
	}}
	return NewSessionHandler(services.NewUserService(store))
}

func TestSessionLoginSetsCookie(t *testing.T) {
	h := newSessionTestHandler()

	req := httptest.NewRequest("POST", "/session", strings.NewReader(`{"username":"meena","password":"pass123"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("session cookie not set")
	}
	if sessionCookie.Value != "USR001" {
		t.Errorf("cookie carries the user id, got %q", sessionCookie.Value)
	}
}

func TestSessionLoginBadCredentials(t *testing.T) {
	h := newSessionTestHandler()

	req := httptest.NewRequest("POST", "/session", strings.NewReader(`{"username":"meena","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSessionCurrent(t *testing.T) {
	h := newSessionTestHandler()

	req := httptest.NewRequest("GET", "/session", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "USR001"})
	rec := httptest.NewRecorder()
	h.Current(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/session", nil)
	rec = httptest.NewRecorder()
	h.Current(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no cookie: expected 401, got %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/session", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "USR999"})
	rec = httptest.NewRecorder()
	h.Current(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("stale cookie: expected 401, got %d", rec.Code)
	}
}

func TestSessionLogoutClearsCookie(t *testing.T) {
	h := newSessionTestHandler()

	req := httptest.NewRequest("DELETE", "/session", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie not cleared")
	}
}
