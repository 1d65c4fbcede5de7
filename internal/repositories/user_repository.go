package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"mfin-backend/internal/models"
	"mfin-backend/internal/store"
)

// UserRepository owns the users collection document
type UserRepository struct {
	store store.CollectionStore

	mu    sync.Mutex
	cache []models.User
	warm  bool
}

func NewUserRepository(s store.CollectionStore) *UserRepository {
	return &UserRepository{store: s}
}

func (r *UserRepository) load(ctx context.Context) ([]models.User, error) {
	data, err := r.store.Load(ctx, store.CollectionUsers)
	if errors.Is(err, store.ErrCollectionMissing) {
		return []models.User{}, nil
	}
	if err != nil {
		if r.warm {
			log.Printf("[Store] users load failed, serving cached copy: %v", err)
			return append([]models.User(nil), r.cache...), nil
		}
		return nil, err
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	r.cache = users
	r.warm = true
	return append([]models.User(nil), users...), nil
}

func (r *UserRepository) save(ctx context.Context, users []models.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, store.CollectionUsers, data); err != nil {
		return err
	}
	r.cache = users
	r.warm = true
	return nil
}

func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// Get returns the user with the given id, or nil when absent
func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// GetByUsername returns the user with the given username, or nil when absent
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Mutate applies fn to the roster under the repository mutex
func (r *UserRepository) Mutate(ctx context.Context, fn func([]models.User) ([]models.User, error)) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	mutated, err := fn(users)
	if err != nil {
		return nil, err
	}
	if err := r.save(ctx, mutated); err != nil {
		return nil, err
	}
	return mutated, nil
}
