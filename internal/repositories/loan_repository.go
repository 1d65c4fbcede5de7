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

// LoanRepository owns the loans collection document. Every mutation is a
// whole-document read-modify-write under the repository mutex, so loan
// operations are atomic within this process. A synchronous in-memory copy is
// refreshed on every successful load and save and served when the backing
// store is briefly unreachable.
type LoanRepository struct {
	store store.CollectionStore

	mu    sync.Mutex
	cache []models.Loan
	warm  bool
}

func NewLoanRepository(s store.CollectionStore) *LoanRepository {
	return &LoanRepository{store: s}
}

func (r *LoanRepository) load(ctx context.Context) ([]models.Loan, error) {
	data, err := r.store.Load(ctx, store.CollectionLoans)
	if errors.Is(err, store.ErrCollectionMissing) {
		return []models.Loan{}, nil
	}
	if err != nil {
		if r.warm {
			log.Printf("[Store] loans load failed, serving cached copy: %v", err)
			return append([]models.Loan(nil), r.cache...), nil
		}
		return nil, err
	}

	var loans []models.Loan
	if err := json.Unmarshal(data, &loans); err != nil {
		return nil, err
	}
	r.cache = loans
	r.warm = true
	return append([]models.Loan(nil), loans...), nil
}

func (r *LoanRepository) save(ctx context.Context, loans []models.Loan) error {
	data, err := json.Marshal(loans)
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, store.CollectionLoans, data); err != nil {
		return err
	}
	r.cache = loans
	r.warm = true
	return nil
}

// All returns a copy of the full loan book
func (r *LoanRepository) All(ctx context.Context) ([]models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// Replace overwrites the whole loan book
func (r *LoanRepository) Replace(ctx context.Context, loans []models.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(ctx, loans)
}

// Mutate loads the book, applies fn and writes the result back, holding the
// mutex across the whole read-modify-write. fn returning an error aborts the
// write, leaving the document untouched.
func (r *LoanRepository) Mutate(ctx context.Context, fn func([]models.Loan) ([]models.Loan, error)) ([]models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loans, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	mutated, err := fn(loans)
	if err != nil {
		return nil, err
	}
	if err := r.save(ctx, mutated); err != nil {
		return nil, err
	}
	return mutated, nil
}
