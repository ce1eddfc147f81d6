package api

import (
	"net/http"
	"strconv"

	"github.com/planora/planora-server/internal/api/respond"
	"github.com/planora/planora-server/internal/services"
)

type ActivityHandler struct {
	svc *services.ActivityService
}

func NewActivityHandler(svc *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respond.WriteBadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	activities, err := h.svc.ListRecent(r.Context(), limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"activities": activities, "count": len(activities)})
}
