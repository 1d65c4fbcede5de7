package handlers

import (
	"encoding/json"
	"net/http"

	"mfin-backend/internal/models"
	"mfin-backend/internal/repositories"
	"mfin-backend/pkg/utils"
)

// FinancialHandler handles the investments/expenses document
type FinancialHandler struct {
	Financials *repositories.FinancialRepository
}

func NewFinancialHandler(financials *repositories.FinancialRepository) *FinancialHandler {
	return &FinancialHandler{Financials: financials}
}

// Get returns the financials document
// GET /api/financials
func (h *FinancialHandler) Get(w http.ResponseWriter, r *http.Request) {
	fin, err := h.Financials.Get(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, fin)
}

// Replace overwrites the financials document wholesale
// POST /api/financials
func (h *FinancialHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var fin models.Financials
	if err := json.NewDecoder(r.Body).Decode(&fin); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fin.Investments == nil {
		fin.Investments = []map[string]interface{}{}
	}
	if fin.Expenses == nil {
		fin.Expenses = []map[string]interface{}{}
	}

	if err := h.Financials.Replace(r.Context(), &fin); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, fin)
}
