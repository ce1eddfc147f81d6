package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/planora/planora-server/internal/api/respond"
	"github.com/planora/planora-server/internal/api/validate"
	"github.com/planora/planora-server/internal/model"
	"github.com/planora/planora-server/internal/services"
)

// dateLayout is the wire format for calendar dates (entry dates, stat windows).
const dateLayout = "2006-01-02"

type TimeEntryHandler struct {
	svc *services.TimeEntryService
}

func NewTimeEntryHandler(svc *services.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{svc: svc}
}

func (h *TimeEntryHandler) CreateTimeEntry(w http.ResponseWriter, r *http.Request) {
	var in struct {
		TaskID    string  `json:"taskId"`
		UserID    string  `json:"userId"`
		EntryDate string  `json:"entryDate"`
		Minutes   int     `json:"minutes"`
		Note      *string `json:"note,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.CreateTimeEntry(in.TaskID, in.UserID, in.Minutes, in.Note); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	entryDate, err := time.Parse(dateLayout, in.EntryDate)
	if err != nil {
		respond.WriteBadRequest(w, "entryDate must be formatted as "+dateLayout)
		return
	}
	e := &model.TimeEntry{
		TaskID:    in.TaskID,
		UserID:    in.UserID,
		EntryDate: entryDate,
		Minutes:   in.Minutes,
		Note:      in.Note,
	}
	out, err := h.svc.CreateTimeEntry(r.Context(), e)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (h *TimeEntryHandler) ListTimeEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := model.ListTimeEntriesRequest{
		TaskID: q.Get("taskId"),
		UserID: q.Get("userId"),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respond.WriteBadRequest(w, "limit must be a non-negative integer")
			return
		}
		req.Limit = limit
	}
	entries, err := h.svc.ListTimeEntries(r.Context(), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": entries, "count": len(entries)})
}
