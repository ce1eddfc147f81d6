package api

import (
	"net/http"
	"time"

	"github.com/planora/planora-server/internal/api/respond"
	"github.com/planora/planora-server/internal/stats"
)

type StatsHandler struct {
	engine *stats.Engine
}

func NewStatsHandler(engine *stats.Engine) *StatsHandler { return &StatsHandler{engine: engine} }

func (h *StatsHandler) GetProjectStats(w http.ResponseWriter, r *http.Request) {
	out, err := h.engine.ProjectStats(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *StatsHandler) GetTaskStats(w http.ResponseWriter, r *http.Request) {
	out, err := h.engine.TaskStats(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *StatsHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	out, err := h.engine.UserStats(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// GetTimeStats handles GET /api/v1/stats/time?start=YYYY-MM-DD&end=YYYY-MM-DD.
// Both bounds are required and inclusive. Bound ordering is not checked; an
// inverted window simply matches nothing.
func (h *StatsHandler) GetTimeStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := time.Parse(dateLayout, q.Get("start"))
	if err != nil {
		respond.WriteBadRequest(w, "start must be formatted as "+dateLayout)
		return
	}
	end, err := time.Parse(dateLayout, q.Get("end"))
	if err != nil {
		respond.WriteBadRequest(w, "end must be formatted as "+dateLayout)
		return
	}
	out, err := h.engine.TimeStats(r.Context(), start, end)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *StatsHandler) GetBudgetStats(w http.ResponseWriter, r *http.Request) {
	out, err := h.engine.BudgetStats(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
