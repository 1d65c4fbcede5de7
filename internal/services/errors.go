package services

import "errors"

// Sentinel errors of the service layer. Handlers map these onto HTTP
// statuses; everything else surfaces as a 500.
var (
	ErrLoanNotFound       = errors.New("loan not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrLedgerIDConflict   = errors.New("ledger id already in use")
	ErrValidation         = errors.New("validation failed")
	ErrRoleLimit          = errors.New("role capacity reached")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
