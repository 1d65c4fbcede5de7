package services

import (
	"context"
	"errors"
	"testing"

	"mfin-backend/internal/models"
)

type staticLoanLister struct {
	loans []models.Loan
}

func (s *staticLoanLister) List(ctx context.Context) ([]models.Loan, error) {
	return s.loans, nil
}

func newTestPortal() *PortalService {
	customers := &fakeCustomerDirectory{customers: []models.Customer{
		{ID: "CUST001", Name: "Lakshmi Devi", Phone: "98765 43210"},
	}}
	loans := &staticLoanLister{loans: []models.Loan{
		{ID: "L100", CustomerID: "CUST001"},
		{ID: "L200-G-1", GroupID: "L200", CustomerID: "CUST001"},
		{ID: "L200-G-2", GroupID: "L200", CustomerID: "CUST002"},
		{ID: "L300", CustomerID: "CUST003"},
	}}
	return NewPortalService(customers, loans)
}

func TestPortalLogin(t *testing.T) {
	svc := newTestPortal()

	c, err := svc.Login(context.Background(), "CUST001", "9876543210")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if c.Name != "Lakshmi Devi" {
		t.Errorf("unexpected customer %+v", c)
	}
	if _, err := svc.Login(context.Background(), "CUST001", "1112223334"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong phone: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "CUST999", "9876543210"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown customer: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestPortalLoansIncludeWholeGroup(t *testing.T) {
	svc := newTestPortal()

	loans, err := svc.LoansFor(context.Background(), "CUST001")
	if err != nil {
		t.Fatalf("LoansFor: %v", err)
	}
	ids := map[string]bool{}
	for _, l := range loans {
		ids[l.ID] = true
	}
	for _, want := range []string{"L100", "L200-G-1", "L200-G-2"} {
		if !ids[want] {
			t.Errorf("expected loan %s in portal view", want)
		}
	}
	if ids["L300"] {
		t.Errorf("another borrower's personal loan leaked into the view")
	}
}

func TestPortalProfile(t *testing.T) {
	svc := newTestPortal()
	if _, err := svc.Profile(context.Background(), "CUST001"); err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if _, err := svc.Profile(context.Background(), "CUST999"); !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
}
