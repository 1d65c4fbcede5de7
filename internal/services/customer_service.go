package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"mfin-backend/internal/models"
	"mfin-backend/internal/timeutil"
)

// CustomerDirectory is the customer persistence surface the service needs
type CustomerDirectory interface {
	All(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id string) (*models.Customer, error)
	Append(ctx context.Context, c models.Customer) error
}

// CustomerService registers and lists borrowers. Ids are sequential CUSTnnn;
// a requested id that is absent or already taken is replaced by the next free
// one.
type CustomerService struct {
	customers CustomerDirectory
}

func NewCustomerService(customers CustomerDirectory) *CustomerService {
	return &CustomerService{customers: customers}
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.customers.All(ctx)
}

func (s *CustomerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	c, err := s.customers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	return c, nil
}

func (s *CustomerService) Create(ctx context.Context, req models.CreateCustomerRequest) (*models.Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(req.Phone) == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrValidation)
	}

	existing, err := s.customers.All(ctx)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(req.ID)
	if id == "" || customerIDTaken(existing, id) {
		id = nextCustomerID(existing)
	}

	customer := models.Customer{
		ID:               id,
		Name:             req.Name,
		Phone:            req.Phone,
		Address:          req.Address,
		Occupation:       req.Occupation,
		IDProofType:      req.IDProofType,
		IDProofNumber:    req.IDProofNumber,
		RegistrationDate: timeutil.FormatDate(timeutil.Today()),
	}
	if err := s.customers.Append(ctx, customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func customerIDTaken(customers []models.Customer, id string) bool {
	for _, c := range customers {
		if c.ID == id {
			return true
		}
	}
	return false
}

// nextCustomerID is one past the highest CUSTnnn suffix on record
func nextCustomerID(customers []models.Customer) string {
	max := 0
	for _, c := range customers {
		n, err := strconv.Atoi(strings.TrimPrefix(c.ID, "CUST"))
		if err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("CUST%03d", max+1)
}
