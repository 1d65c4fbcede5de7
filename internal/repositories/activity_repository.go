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

// ActivityRepository owns the userActivities document, an append-only audit
// log kept newest-first.
type ActivityRepository struct {
	store store.CollectionStore

	mu    sync.Mutex
	cache []models.UserActivity
	warm  bool
}

func NewActivityRepository(s store.CollectionStore) *ActivityRepository {
	return &ActivityRepository{store: s}
}

func (r *ActivityRepository) load(ctx context.Context) ([]models.UserActivity, error) {
	data, err := r.store.Load(ctx, store.CollectionActivities)
	if errors.Is(err, store.ErrCollectionMissing) {
		return []models.UserActivity{}, nil
	}
	if err != nil {
		if r.warm {
			log.Printf("[Store] userActivities load failed, serving cached copy: %v", err)
			return append([]models.UserActivity(nil), r.cache...), nil
		}
		return nil, err
	}

	var activities []models.UserActivity
	if err := json.Unmarshal(data, &activities); err != nil {
		return nil, err
	}
	r.cache = activities
	r.warm = true
	return append([]models.UserActivity(nil), activities...), nil
}

func (r *ActivityRepository) All(ctx context.Context) ([]models.UserActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// Prepend inserts the newest entry at the head of the log
func (r *ActivityRepository) Prepend(ctx context.Context, a models.UserActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	activities, err := r.load(ctx)
	if err != nil {
		return err
	}
	activities = append([]models.UserActivity{a}, activities...)

	data, err := json.Marshal(activities)
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, store.CollectionActivities, data); err != nil {
		return err
	}
	r.cache = activities
	return nil
}
