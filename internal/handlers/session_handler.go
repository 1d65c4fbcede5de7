package handlers

import (
	"encoding/json"
	"net/http"

	"mfin-backend/internal/auth"
	"mfin-backend/internal/models"
	"mfin-backend/internal/services"
	"mfin-backend/pkg/utils"
)

// SessionHandler handles staff login, logout and session introspection.
// The session is a cookie carrying the staff user id in the clear.
type SessionHandler struct {
	UserService *services.UserService
}

func NewSessionHandler(userService *services.UserService) *SessionHandler {
	return &SessionHandler{UserService: userService}
}

// Login opens a staff session
// POST /session
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.UserService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	auth.SetSession(w, user.ID)
	utils.JSON(w, http.StatusOK, user)
}

// Current returns the logged-in staff user, or 401
// GET /session
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.SessionUserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not logged in")
		return
	}

	user, err := h.UserService.Get(r.Context(), userID)
	if err != nil {
		auth.ClearSession(w)
		utils.Error(w, http.StatusUnauthorized, "Not logged in")
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// Logout clears the session cookie
// DELETE /session
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	utils.JSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
