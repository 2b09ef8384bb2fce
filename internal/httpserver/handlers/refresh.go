package handlers

import (
	"net/http"

	"github.com/alltabs/alltabsd/internal/httpserver/deps"
	"github.com/alltabs/alltabsd/internal/logger"
)

// Refresh requests an immediate reload from the backend. The actual load
// happens on the scheduler goroutine; a refresh already in flight makes
// this a no-op.
func Refresh(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.RefreshTrigger <- struct{}{}:
			d.Logger.Info("manual refresh triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh triggered"})
		default:
			d.Logger.Warn("refresh already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"status": "refresh already in progress"})
		}
	}
}
