package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/planora/planora-server/internal/api/respond"
	"github.com/planora/planora-server/internal/api/validate"
	"github.com/planora/planora-server/internal/model"
	"github.com/planora/planora-server/internal/services"
)

type TaskHandler struct {
	svc *services.TaskService
}

func NewTaskHandler(svc *services.TaskService) *TaskHandler { return &TaskHandler{svc: svc} }

type taskPayload struct {
	Title      string             `json:"title"`
	Status     model.TaskStatus   `json:"status"`
	Priority   model.TaskPriority `json:"priority"`
	Deadline   *time.Time         `json:"deadline,omitempty"`
	AssigneeID *string            `json:"assigneeId,omitempty"`
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var in taskPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.Status == "" {
		in.Status = model.TaskTodo
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if err := validate.CreateTask(in.Title, in.Status, in.Priority); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	t := &model.Task{
		ProjectID:  mux.Vars(r)["projectId"],
		Title:      in.Title,
		Status:     in.Status,
		Priority:   in.Priority,
		Deadline:   in.Deadline,
		AssigneeID: in.AssigneeID,
	}
	out, err := h.svc.CreateTask(r.Context(), actorID(r), t)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.GetTask(r.Context(), mux.Vars(r)["taskId"])
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.ListTasks(r.Context(), mux.Vars(r)["projectId"])
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks, "count": len(tasks)})
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var in taskPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	existing, err := h.svc.GetTask(r.Context(), mux.Vars(r)["taskId"])
	if err != nil {
		writeErr(w, err)
		return
	}
	if in.Title == "" {
		in.Title = existing.Title
	}
	if in.Status == "" {
		in.Status = existing.Status
	}
	if in.Priority == "" {
		in.Priority = existing.Priority
	}
	if err := validate.CreateTask(in.Title, in.Status, in.Priority); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	existing.Title = in.Title
	existing.Status = in.Status
	existing.Priority = in.Priority
	existing.Deadline = in.Deadline
	if in.AssigneeID != nil {
		existing.AssigneeID = in.AssigneeID
	}
	out, err := h.svc.UpdateTask(r.Context(), actorID(r), existing)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *TaskHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	var in struct {
		AssigneeID string `json:"assigneeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.AssigneeID == "" {
		respond.WriteBadRequest(w, "assigneeId is required")
		return
	}
	out, err := h.svc.AssignTask(r.Context(), actorID(r), mux.Vars(r)["taskId"], in.AssigneeID)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTask(r.Context(), actorID(r), mux.Vars(r)["taskId"]); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
