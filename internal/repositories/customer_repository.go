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

// CustomerRepository owns the customers collection document
type CustomerRepository struct {
	store store.CollectionStore

	mu    sync.Mutex
	cache []models.Customer
	warm  bool
}

func NewCustomerRepository(s store.CollectionStore) *CustomerRepository {
	return &CustomerRepository{store: s}
}

func (r *CustomerRepository) load(ctx context.Context) ([]models.Customer, error) {
	data, err := r.store.Load(ctx, store.CollectionCustomers)
	if errors.Is(err, store.ErrCollectionMissing) {
		return []models.Customer{}, nil
	}
	if err != nil {
		if r.warm {
			log.Printf("[Store] customers load failed, serving cached copy: %v", err)
			return append([]models.Customer(nil), r.cache...), nil
		}
		return nil, err
	}

	var customers []models.Customer
	if err := json.Unmarshal(data, &customers); err != nil {
		return nil, err
	}
	r.cache = customers
	r.warm = true
	return append([]models.Customer(nil), customers...), nil
}

func (r *CustomerRepository) save(ctx context.Context, customers []models.Customer) error {
	data, err := json.Marshal(customers)
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, store.CollectionCustomers, data); err != nil {
		return err
	}
	r.cache = customers
	r.warm = true
	return nil
}

func (r *CustomerRepository) All(ctx context.Context) ([]models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// Get returns the customer with the given id, or nil when absent
func (r *CustomerRepository) Get(ctx context.Context, id string) (*models.Customer, error) {
	customers, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			return &customers[i], nil
		}
	}
	return nil, nil
}

// Append adds a customer and rewrites the collection
func (r *CustomerRepository) Append(ctx context.Context, c models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	customers, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append(customers, c))
}
