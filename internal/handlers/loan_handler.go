package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"mfin-backend/internal/cache"
	"mfin-backend/internal/models"
	"mfin-backend/internal/services"
	"mfin-backend/pkg/utils"
)

// LoanHandler handles the loan book endpoints
type LoanHandler struct {
	LoanService *services.LoanService
}

func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{LoanService: loanService}
}

// List returns every loan with statuses and due dates resolved
// GET /api/loans
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	loans, err := h.LoanService.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, loans)
}

// Create registers a new pending loan
// POST /api/loans
func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	loan, err := h.LoanService.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	cache.InvalidateLoanCaches(r.Context())
	utils.JSON(w, http.StatusCreated, loan)
}

// Patch dispatches loan mutations on the action field of the body:
// approve, payment or update.
// PATCH /api/loans
func (h *LoanHandler) Patch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var envelope struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch envelope.Action {
	case "approve":
		var req models.ApproveLoanRequest
		if err := json.Unmarshal(body, &req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		approved, err := h.LoanService.Approve(r.Context(), req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		cache.InvalidateLoanCaches(r.Context())
		utils.JSON(w, http.StatusOK, approved)

	case "payment":
		var req models.RecordPaymentRequest
		if err := json.Unmarshal(body, &req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		updated, err := h.LoanService.RecordPayment(r.Context(), req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		cache.InvalidateLoanCaches(r.Context())
		utils.JSON(w, http.StatusOK, updated)

	case "update":
		var req models.UpdateLoanRequest
		if err := json.Unmarshal(body, &req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		loan, err := h.LoanService.Update(r.Context(), req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		cache.InvalidateLoanCaches(r.Context())
		utils.JSON(w, http.StatusOK, loan)

	default:
		utils.Error(w, http.StatusBadRequest, "Unknown action: "+envelope.Action)
	}
}

// Delete removes a loan record
// DELETE /api/loans/{id}
func (h *LoanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.LoanService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	cache.InvalidateLoanCaches(r.Context())
	utils.JSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// Groups returns the loan book partitioned into groups and personal loans.
// The projection is cached briefly; every loan write invalidates it.
// GET /api/loans/groups
func (h *LoanHandler) Groups(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCached(r.Context(), cache.LoanGroupsKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	view, err := h.LoanService.Groups(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if data, err := json.Marshal(view); err == nil {
		cache.SetCached(r.Context(), cache.LoanGroupsKey, data, time.Minute)
	}
	utils.JSON(w, http.StatusOK, view)
}
