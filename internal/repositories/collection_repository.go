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

// CollectionEventRepository owns the collections document: the flat list of
// recorded payment events.
type CollectionEventRepository struct {
	store store.CollectionStore

	mu    sync.Mutex
	cache []models.Collection
	warm  bool
}

func NewCollectionEventRepository(s store.CollectionStore) *CollectionEventRepository {
	return &CollectionEventRepository{store: s}
}

func (r *CollectionEventRepository) load(ctx context.Context) ([]models.Collection, error) {
	data, err := r.store.Load(ctx, store.CollectionCollections)
	if errors.Is(err, store.ErrCollectionMissing) {
		return []models.Collection{}, nil
	}
	if err != nil {
		if r.warm {
			log.Printf("[Store] collections load failed, serving cached copy: %v", err)
			return append([]models.Collection(nil), r.cache...), nil
		}
		return nil, err
	}

	var events []models.Collection
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	r.cache = events
	r.warm = true
	return append([]models.Collection(nil), events...), nil
}

func (r *CollectionEventRepository) All(ctx context.Context) ([]models.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// Append records a payment event and rewrites the document
func (r *CollectionEventRepository) Append(ctx context.Context, c models.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.load(ctx)
	if err != nil {
		return err
	}
	events = append(events, c)

	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, store.CollectionCollections, data); err != nil {
		return err
	}
	r.cache = events
	return nil
}
