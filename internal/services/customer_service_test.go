package services

import (
	"context"
	"errors"
	"testing"

	"mfin-backend/internal/models"
)

type fakeCustomerDirectory struct {
	customers []models.Customer
}

func (f *fakeCustomerDirectory) All(ctx context.Context) ([]models.Customer, error) {
	return append([]models.Customer(nil), f.customers...), nil
}

func (f *fakeCustomerDirectory) Get(ctx context.Context, id string) (*models.Customer, error) {
	for i := range f.customers {
		if f.customers[i].ID == id {
			c := f.customers[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerDirectory) Append(ctx context.Context, c models.Customer) error {
	f.customers = append(f.customers, c)
	return nil
}

func TestCreateCustomerGeneratesSequentialID(t *testing.T) {
	dir := &fakeCustomerDirectory{customers: []models.Customer{
		{ID: "CUST001"}, {ID: "CUST007"},
	}}
	svc := NewCustomerService(dir)

	c, err := svc.Create(context.Background(), models.CreateCustomerRequest{
		Name: "Lakshmi Devi", Phone: "9876543210",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID != "CUST008" {
		t.Errorf("expected CUST008, got %q", c.ID)
	}
	if c.RegistrationDate == "" {
		t.Errorf("registration date must be set")
	}
}

func TestCreateCustomerKeepsFreeRequestedID(t *testing.T) {
	svc := NewCustomerService(&fakeCustomerDirectory{})

	c, err := svc.Create(context.Background(), models.CreateCustomerRequest{
		ID: "CUST042", Name: "Radha", Phone: "9000000001",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID != "CUST042" {
		t.Errorf("expected requested id to survive, got %q", c.ID)
	}
}

func TestCreateCustomerReplacesTakenID(t *testing.T) {
	dir := &fakeCustomerDirectory{customers: []models.Customer{{ID: "CUST005"}}}
	svc := NewCustomerService(dir)

	c, err := svc.Create(context.Background(), models.CreateCustomerRequest{
		ID: "CUST005", Name: "Radha", Phone: "9000000001",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID != "CUST006" {
		t.Errorf("expected next free id CUST006, got %q", c.ID)
	}
}

func TestCreateCustomerValidation(t *testing.T) {
	svc := NewCustomerService(&fakeCustomerDirectory{})
	if _, err := svc.Create(context.Background(), models.CreateCustomerRequest{Phone: "9"}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing name: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Create(context.Background(), models.CreateCustomerRequest{Name: "A"}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing phone: expected ErrValidation, got %v", err)
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	svc := NewCustomerService(&fakeCustomerDirectory{})
	if _, err := svc.Get(context.Background(), "CUST999"); !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
}
