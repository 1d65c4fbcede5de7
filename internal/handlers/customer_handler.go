package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"mfin-backend/internal/models"
	"mfin-backend/internal/services"
	"mfin-backend/pkg/utils"
)

// CustomerHandler handles borrower registry endpoints
type CustomerHandler struct {
	CustomerService *services.CustomerService
}

func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{CustomerService: customerService}
}

// List returns every registered borrower
// GET /api/customers
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.CustomerService.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, customers)
}

// Get returns one borrower by id
// GET /api/customers/{id}
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	customer, err := h.CustomerService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

// Create registers a new borrower
// POST /api/customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.CustomerService.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, customer)
}
