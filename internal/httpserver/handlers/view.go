package handlers

import (
	"net/http"

	"github.com/alltabs/alltabsd/internal/domain"
	"github.com/alltabs/alltabsd/internal/httpserver/deps"
)

type viewItemJSON struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	URL       string `json:"url"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password,omitempty"`
	IsStarred bool   `json:"is_starred"`
	OwnerID   string `json:"category_id"` // true owning category, not the displayed view
}

type viewResponse struct {
	View  string         `json:"view"`
	Query string         `json:"query"`
	Items []viewItemJSON `json:"items"`
}

// View returns the projection of the active view with the active search
// filter: the exact sequence the UI renders.
func View(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, currentView(d))
	}
}

type selectViewRequest struct {
	View  *string `json:"view,omitempty"`
	Query *string `json:"query,omitempty"`
}

// SelectView switches the active view and/or the search filter, then
// returns the fresh projection.
func SelectView(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectViewRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		if req.View != nil {
			if err := d.Coordinator.SelectView(*req.View); err != nil {
				writeError(w, err)
				return
			}
		}
		if req.Query != nil {
			d.Coordinator.SetSearch(*req.Query)
		}

		writeJSON(w, http.StatusOK, currentView(d))
	}
}

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Reorder moves a bookmark within the active category's manual order.
func Reorder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reorderRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		if err := d.Coordinator.Reorder(r.Context(), req.From, req.To); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, currentView(d))
	}
}

func currentView(d deps.Deps) viewResponse {
	items := d.Coordinator.View()
	resp := viewResponse{
		View:  d.Coordinator.ActiveView(),
		Query: d.Coordinator.SearchQuery(),
		Items: make([]viewItemJSON, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, toViewItemJSON(it))
	}
	return resp
}

func toViewItemJSON(it domain.ViewItem) viewItemJSON {
	return viewItemJSON{
		ID:        it.ID,
		Label:     it.Label,
		URL:       it.URL,
		Username:  it.Username,
		Password:  it.Password,
		IsStarred: it.IsStarred,
		OwnerID:   it.OwnerID,
	}
}
