package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"mfin-backend/internal/models"
	"mfin-backend/internal/repositories"
	"mfin-backend/internal/timeutil"
	"mfin-backend/pkg/utils"
)

// ActivityHandler handles the staff audit log
type ActivityHandler struct {
	Activities *repositories.ActivityRepository
}

func NewActivityHandler(activities *repositories.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{Activities: activities}
}

// List returns the audit log, newest first
// GET /api/userActivities
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.Activities.All(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, activities)
}

// Create prepends one audit entry
// POST /api/userActivities
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var activity models.UserActivity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if activity.Action == "" {
		utils.Error(w, http.StatusBadRequest, "Missing required field: action")
		return
	}
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	if activity.Timestamp == "" {
		activity.Timestamp = timeutil.Now().Format(timeutil.DateTimeLayout)
	}

	if err := h.Activities.Prepend(r.Context(), activity); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, activity)
}
