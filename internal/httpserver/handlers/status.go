package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/alltabs/alltabsd/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Categories *int   `json:"categories,omitempty"`
	Bookmarks  *int   `json:"bookmarks,omitempty"`
	LastLoad   string `json:"last_load,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Error      string `json:"error,omitempty"`
}

type statusResponse struct {
	Authenticated bool                       `json:"authenticated"`
	Components    map[string]componentStatus `json:"components"`
}

// Status reports the daemon's reconciliation state: whether a session is
// held, what the store currently carries and whether the snapshot cache
// is reachable.
func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catCount := d.Store.CategoryCount()
		bmCount := d.Store.BookmarkCount()
		lastLoad := "never"
		if t := d.Store.LoadedAt(); !t.IsZero() {
			lastLoad = t.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"store": {
				OK:         catCount > 0,
				Categories: &catCount,
				Bookmarks:  &bmCount,
				LastLoad:   lastLoad,
			},
			"cache":   checkCache(d),
			"backend": {OK: true, Mode: d.BackendURL},
		}

		writeJSON(w, http.StatusOK, statusResponse{
			Authenticated: d.Gate.Authenticated(),
			Components:    components,
		})
	}
}

func checkCache(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:   false,
			Mode: "disabled",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:    false,
			Mode:  "degraded",
			Error: "unreachable",
		}
	}

	return componentStatus{
		OK:   true,
		Mode: "snapshot",
	}
}
