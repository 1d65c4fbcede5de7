package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mfin-backend/internal/models"
)

type fakeUserStore struct {
	users []models.User
}

func (f *fakeUserStore) All(ctx context.Context) ([]models.User, error) {
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeUserStore) Get(ctx context.Context, id string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for i := range f.users {
		if strings.EqualFold(f.users[i].Username, username) {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Mutate(ctx context.Context, fn func([]models.User) ([]models.User, error)) ([]models.User, error) {
	working := append([]models.User(nil), f.users...)
	mutated, err := fn(working)
	if err != nil {
		return nil, err
	}
	f.users = mutated
	return mutated, nil
}

func TestCreateUserGeneratesSequentialID(t *testing.T) {
	store := &fakeUserStore{users: []models.User{{ID: "USR002", Username: "meena", Role: models.RoleAgent}}}
	svc := NewUserService(store)

	u, err := svc.Create(context.Background(), models.CreateUserRequest{
		Username: "admin", Password: "secret", Role: models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID != "USR003" {
		t.Errorf("expected USR003, got %q", u.ID)
	}
	if u.Password != "secret" {
		t.Errorf("password must be stored as given, got %q", u.Password)
	}
}

func TestCreateUserRoleLimits(t *testing.T) {
	store := &fakeUserStore{users: []models.User{
		{ID: "USR001", Username: "admin", Role: models.RoleAdmin},
		{ID: "USR002", Username: "meena", Role: models.RoleAgent},
		{ID: "USR003", Username: "ravi", Role: models.RoleAgent},
	}}
	svc := NewUserService(store)

	if _, err := svc.Create(context.Background(), models.CreateUserRequest{Username: "admin2", Password: "x", Role: models.RoleAdmin}); !errors.Is(err, ErrRoleLimit) {
		t.Errorf("second admin: expected ErrRoleLimit, got %v", err)
	}
	if _, err := svc.Create(context.Background(), models.CreateUserRequest{Username: "third", Password: "x", Role: models.RoleAgent}); !errors.Is(err, ErrRoleLimit) {
		t.Errorf("third agent: expected ErrRoleLimit, got %v", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewUserService(&fakeUserStore{users: []models.User{{ID: "USR001", Username: "meena", Role: models.RoleAgent}}})

	cases := []struct {
		name string
		req  models.CreateUserRequest
	}{
		{"missing username", models.CreateUserRequest{Password: "x", Role: models.RoleAgent}},
		{"missing password", models.CreateUserRequest{Username: "a", Role: models.RoleAgent}},
		{"bad role", models.CreateUserRequest{Username: "a", Password: "x", Role: "Manager"}},
		{"duplicate username", models.CreateUserRequest{Username: "Meena", Password: "x", Role: models.RoleAgent}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), tc.req); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestUpdateUserPartialFields(t *testing.T) {
	store := &fakeUserStore{users: []models.User{
		{ID: "USR001", Username: "meena", Password: "old", Role: models.RoleAgent},
	}}
	svc := NewUserService(store)

	u, err := svc.Update(context.Background(), models.UpdateUserRequest{ID: "USR001", Password: "new"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if u.Password != "new" || u.Username != "meena" || u.Role != models.RoleAgent {
		t.Errorf("only the password should change, got %+v", u)
	}
}

func TestUpdateUserRoleChangeChecksCapacity(t *testing.T) {
	store := &fakeUserStore{users: []models.User{
		{ID: "USR001", Username: "admin", Role: models.RoleAdmin},
		{ID: "USR002", Username: "meena", Role: models.RoleAgent},
	}}
	svc := NewUserService(store)

	if _, err := svc.Update(context.Background(), models.UpdateUserRequest{ID: "USR002", Role: models.RoleAdmin}); !errors.Is(err, ErrRoleLimit) {
		t.Errorf("promoting a second admin: expected ErrRoleLimit, got %v", err)
	}
	// Keeping the same role on the sole admin is not a capacity violation.
	if _, err := svc.Update(context.Background(), models.UpdateUserRequest{ID: "USR001", Username: "root"}); err != nil {
		t.Errorf("renaming the admin: %v", err)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	svc := NewUserService(&fakeUserStore{})
	if _, err := svc.Update(context.Background(), models.UpdateUserRequest{ID: "USR009", Password: "x"}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewUserService(&fakeUserStore{users: []models.User{
		{ID: "USR001", Username: "meena", Password: "pass123", Role: models.RoleAgent},
	}})

	u, err := svc.Authenticate(context.Background(), "meena", "pass123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if u.ID != "USR001" {
		t.Errorf("expected USR001, got %q", u.ID)
	}
	if _, err := svc.Authenticate(context.Background(), "meena", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "ghost", "pass123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}
