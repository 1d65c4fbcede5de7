package handlers

import (
	"net/http"

	"mfin-backend/internal/repositories"
	"mfin-backend/pkg/utils"
)

// CollectionHandler lists recorded payment events. Events are created by the
// loan payment flow, not through this endpoint.
type CollectionHandler struct {
	Collections *repositories.CollectionEventRepository
}

func NewCollectionHandler(collections *repositories.CollectionEventRepository) *CollectionHandler {
	return &CollectionHandler{Collections: collections}
}

// List returns every recorded payment event
// GET /api/collections
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.Collections.All(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, events)
}
