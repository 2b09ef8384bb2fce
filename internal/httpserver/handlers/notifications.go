package handlers

import (
	"net/http"

	"github.com/alltabs/alltabsd/internal/coordinator"
	"github.com/alltabs/alltabsd/internal/httpserver/deps"
)

type notificationsResponse struct {
	Notifications []coordinator.Notification `json:"notifications"`
}

// Notifications returns the most recent user-facing notices, oldest first.
func Notifications(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := d.Notifications.Recent()
		if items == nil {
			items = []coordinator.Notification{}
		}
		writeJSON(w, http.StatusOK, notificationsResponse{Notifications: items})
	}
}
