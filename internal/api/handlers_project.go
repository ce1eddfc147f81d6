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

type ProjectHandler struct {
	svc *services.ProjectService
}

func NewProjectHandler(svc *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

type projectPayload struct {
	ClientID    string              `json:"clientId"`
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	Status      model.ProjectStatus `json:"status"`
	Deadline    *time.Time          `json:"deadline,omitempty"`
	Progress    int                 `json:"progress"`
	Budget      *float64            `json:"budget,omitempty"`
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in projectPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.Status == "" {
		in.Status = model.ProjectDraft
	}
	if err := validate.CreateProject(in.ClientID, in.Name, in.Description, in.Status, in.Progress); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	p := &model.Project{
		ClientID:    in.ClientID,
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		Deadline:    in.Deadline,
		Progress:    in.Progress,
		Budget:      in.Budget,
	}
	out, err := h.svc.CreateProject(r.Context(), actorID(r), p)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProject(r.Context(), mux.Vars(r)["projectId"])
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.ListProjects(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"projects": projects, "count": len(projects)})
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var in projectPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	projectID := mux.Vars(r)["projectId"]
	existing, err := h.svc.GetProject(r.Context(), projectID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if in.ClientID == "" {
		in.ClientID = existing.ClientID
	}
	if in.Name == "" {
		in.Name = existing.Name
	}
	if in.Status == "" {
		in.Status = existing.Status
	}
	if err := validate.CreateProject(in.ClientID, in.Name, in.Description, in.Status, in.Progress); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	existing.ClientID = in.ClientID
	existing.Name = in.Name
	existing.Description = in.Description
	existing.Status = in.Status
	existing.Deadline = in.Deadline
	existing.Progress = in.Progress
	existing.Budget = in.Budget
	out, err := h.svc.UpdateProject(r.Context(), actorID(r), existing)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProject(r.Context(), actorID(r), mux.Vars(r)["projectId"]); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
