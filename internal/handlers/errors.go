package handlers

import (
	"errors"
	"net/http"

	"mfin-backend/internal/services"
	"mfin-backend/pkg/utils"
)

// writeServiceError maps service sentinels onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrLoanNotFound),
		errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrUserNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrLedgerIDConflict),
		errors.Is(err, services.ErrRoleLimit):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(w, http.StatusUnauthorized, err.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
