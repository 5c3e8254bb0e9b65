package handlers

import (
	"net/http"

	"github.com/hackmap/engine/internal/services"
)

type NotificationsHandler struct {
	notifications services.NotificationService
}

func NewNotificationsHandler(notifications services.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.notifications.ListForUser(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondList(w, r, list)
}

func (h *NotificationsHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.notifications.UnreadCount(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]int{"unread": n})
}

func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	n, err := h.notifications.MarkRead(r.Context(), id, currentUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, n)
}
