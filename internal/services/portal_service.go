package services

import (
	"context"
	"fmt"
	"strings"

	"mfin-backend/internal/models"
)

// loanLister is the read surface the portal borrows from the loan service
type loanLister interface {
	List(ctx context.Context) ([]models.Loan, error)
}

// PortalService backs the customer-facing portal: borrower login and
// read-only access to the borrower's own records.
type PortalService struct {
	customers CustomerDirectory
	loans     loanLister
}

func NewPortalService(customers CustomerDirectory, loans loanLister) *PortalService {
	return &PortalService{customers: customers, loans: loans}
}

// Login checks a customer id against the registered phone number
func (s *PortalService) Login(ctx context.Context, customerID, phone string) (*models.Customer, error) {
	c, err := s.customers.Get(ctx, strings.TrimSpace(customerID))
	if err != nil {
		return nil, err
	}
	if c == nil || normalizePhone(c.Phone) != normalizePhone(phone) {
		return nil, ErrInvalidCredentials
	}
	return c, nil
}

// LoansFor returns the borrower's loans with statuses resolved, including
// every member record of any group the borrower belongs to.
func (s *PortalService) LoansFor(ctx context.Context, customerID string) ([]models.Loan, error) {
	loans, err := s.loans.List(ctx)
	if err != nil {
		return nil, err
	}

	groups := map[string]bool{}
	for _, l := range loans {
		if l.CustomerID == customerID && l.IsGroup() {
			groups[l.GroupID] = true
		}
	}

	own := []models.Loan{}
	for _, l := range loans {
		if l.CustomerID == customerID || (l.IsGroup() && groups[l.GroupID]) {
			own = append(own, l)
		}
	}
	return own, nil
}

// Profile returns the borrower's own customer record
func (s *PortalService) Profile(ctx context.Context, customerID string) (*models.Customer, error) {
	c, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
	}
	return c, nil
}

// normalizePhone strips spaces and dashes so stored and typed numbers compare
func normalizePhone(p string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-':
			return -1
		}
		return r
	}, strings.TrimSpace(p))
}
