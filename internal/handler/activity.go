package handler

import (
	"net/http"

	"github.com/habitquest/habitquest-go/internal/eventlog"
)

// ActivityHandler serves a player's persisted event feed
type ActivityHandler struct {
	events eventlog.Service
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(events eventlog.Service) *ActivityHandler {
	return &ActivityHandler{events: events}
}

// HandleGetActivity lists recent events about a user, newest first
// @Summary Recent activity
// @Tags profiles
// @Produce json
// @Param userID path string true "User ID"
// @Param limit query int false "Rows to return (1-100)"
// @Success 200 {object} DataResponse{data=[]eventlog.Entry}
// @Failure 400 {object} FailureResponse
// @Router /api/v1/profiles/{userID}/activity [get]
func (h *ActivityHandler) HandleGetActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}
	limit, ok := GetLimitParam(r, w)
	if !ok {
		return
	}

	entries, err := h.events.Recent(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, "get_activity", err)
		return
	}
	respondData(w, http.StatusOK, entries)
}
