package handlers

import (
	"encoding/json"
	"net/http"

	"mfin-backend/internal/auth"
	"mfin-backend/internal/middleware"
	"mfin-backend/internal/services"
	"mfin-backend/pkg/utils"
)

// PortalHandler handles the borrower-facing portal endpoints
type PortalHandler struct {
	PortalService *services.PortalService
	JWTManager    *auth.JWTManager
}

func NewPortalHandler(portalService *services.PortalService, jwtManager *auth.JWTManager) *PortalHandler {
	return &PortalHandler{PortalService: portalService, JWTManager: jwtManager}
}

// Login authenticates a borrower with customer id and registered phone
// POST /auth/login
func (h *PortalHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID string `json:"customerId"`
		Phone      string `json:"phone"`
		RememberMe bool   `json:"rememberMe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.PortalService.Login(r.Context(), req.CustomerID, req.Phone)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.JWTManager.GenerateCustomerToken(customer, req.RememberMe)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"token":    token,
		"customer": customer,
	})
}

// Loans returns the borrower's own loans
// GET /api/loans
func (h *PortalHandler) Loans(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	loans, err := h.PortalService.LoansFor(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, loans)
}

// Profile returns the borrower's own customer record
// GET /api/profile
func (h *PortalHandler) Profile(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	customer, err := h.PortalService.Profile(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}
