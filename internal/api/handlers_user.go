package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/planora/planora-server/internal/api/respond"
	"github.com/planora/planora-server/internal/api/validate"
	"github.com/planora/planora-server/internal/model"
	"github.com/planora/planora-server/internal/services"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID      string     `json:"userId"`
		Email       string     `json:"email"`
		DisplayName *string    `json:"displayName,omitempty"`
		Role        model.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.CreateUser(in.UserID, in.Email, in.DisplayName, in.Role); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	u := &model.User{UserID: in.UserID, Email: in.Email, DisplayName: in.DisplayName, Role: in.Role}
	out, err := h.svc.CreateUser(r.Context(), u)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		respond.WriteBadRequest(w, "userId required")
		return
	}
	u, err := h.svc.GetUser(r.Context(), userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"users": users, "count": len(users)})
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if err := h.svc.DeleteUser(r.Context(), userID); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
