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

type NotificationHandler struct {
	svc *services.NotificationService
}

func NewNotificationHandler(svc *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID  string `json:"userId"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.NonEmpty("userId", in.UserID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.NonEmpty("message", in.Message); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := h.svc.CreateNotification(r.Context(), &model.Notification{UserID: in.UserID, Message: in.Message})
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	notifications, err := h.svc.ListNotifications(r.Context(), userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications, "count": len(notifications)})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.MarkRead(r.Context(), mux.Vars(r)["notificationId"]); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
