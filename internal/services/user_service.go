package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"mfin-backend/internal/models"
	"mfin-backend/internal/timeutil"
)

// Staff roster policy: a single admin, at most two collection agents.
const (
	maxAdmins = 1
	maxAgents = 2
)

// UserStore is the staff-user persistence surface the service needs
type UserStore interface {
	All(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Mutate(ctx context.Context, fn func([]models.User) ([]models.User, error)) ([]models.User, error)
}

// UserService manages the staff roster and checks login credentials.
// Passwords are stored and compared as plaintext, matching the collection
// document format.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.All(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleAgent {
		return nil, fmt.Errorf("%w: role must be %q or %q", ErrValidation, models.RoleAdmin, models.RoleAgent)
	}

	var created models.User
	_, err := s.users.Mutate(ctx, func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if strings.EqualFold(u.Username, username) {
				return nil, fmt.Errorf("%w: username %q already exists", ErrValidation, username)
			}
		}
		if err := checkRoleCapacity(users, req.Role, ""); err != nil {
			return nil, err
		}
		created = models.User{
			ID:        nextUserID(users),
			Username:  username,
			Password:  req.Password,
			Role:      req.Role,
			CreatedAt: timeutil.Now().Format(timeutil.DateTimeLayout),
		}
		return append(users, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies the non-empty fields of the request to the user matching id
func (s *UserService) Update(ctx context.Context, req models.UpdateUserRequest) (*models.User, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}
	if req.Role != "" && req.Role != models.RoleAdmin && req.Role != models.RoleAgent {
		return nil, fmt.Errorf("%w: role must be %q or %q", ErrValidation, models.RoleAdmin, models.RoleAgent)
	}

	var updated models.User
	_, err := s.users.Mutate(ctx, func(users []models.User) ([]models.User, error) {
		idx := -1
		for i := range users {
			if users[i].ID == req.ID {
				idx = i
				continue
			}
			if req.Username != "" && strings.EqualFold(users[i].Username, req.Username) {
				return nil, fmt.Errorf("%w: username %q already exists", ErrValidation, req.Username)
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, req.ID)
		}
		if req.Role != "" && req.Role != users[idx].Role {
			if err := checkRoleCapacity(users, req.Role, req.ID); err != nil {
				return nil, err
			}
			users[idx].Role = req.Role
		}
		if req.Username != "" {
			users[idx].Username = req.Username
		}
		if req.Password != "" {
			users[idx].Password = req.Password
		}
		updated = users[idx]
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Authenticate checks a username/password pair against the roster
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Password != password {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func checkRoleCapacity(users []models.User, role, excludeID string) error {
	limit := maxAgents
	if role == models.RoleAdmin {
		limit = maxAdmins
	}
	count := 0
	for _, u := range users {
		if u.Role == role && u.ID != excludeID {
			count++
		}
	}
	if count >= limit {
		return fmt.Errorf("%w: at most %d %s allowed", ErrRoleLimit, limit, role)
	}
	return nil
}

// nextUserID is one past the highest USRnnn suffix on record
func nextUserID(users []models.User) string {
	max := 0
	for _, u := range users {
		n, err := strconv.Atoi(strings.TrimPrefix(u.ID, "USR"))
		if err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("USR%03d", max+1)
}
