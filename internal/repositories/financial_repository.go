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

// FinancialRepository owns the financials document, a composite object of two
// arrays. POST replaces the document wholesale.
type FinancialRepository struct {
	store store.CollectionStore

	mu    sync.Mutex
	cache *models.Financials
}

func NewFinancialRepository(s store.CollectionStore) *FinancialRepository {
	return &FinancialRepository{store: s}
}

func (r *FinancialRepository) Get(ctx context.Context) (*models.Financials, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.store.Load(ctx, store.CollectionFinancials)
	if errors.Is(err, store.ErrCollectionMissing) {
		return &models.Financials{
			Investments: []map[string]interface{}{},
			Expenses:    []map[string]interface{}{},
		}, nil
	}
	if err != nil {
		if r.cache != nil {
			log.Printf("[Store] financials load failed, serving cached copy: %v", err)
			return r.cache, nil
		}
		return nil, err
	}

	var fin models.Financials
	if err := json.Unmarshal(data, &fin); err != nil {
		return nil, err
	}
	if fin.Investments == nil {
		fin.Investments = []map[string]interface{}{}
	}
	if fin.Expenses == nil {
		fin.Expenses = []map[string]interface{}{}
	}
	r.cache = &fin
	return &fin, nil
}

// Replace overwrites the whole financials document
func (r *FinancialRepository) Replace(ctx context.Context, fin *models.Financials) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(fin)
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, store.CollectionFinancials, data); err != nil {
		return err
	}
	r.cache = fin
	return nil
}
