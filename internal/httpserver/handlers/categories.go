package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alltabs/alltabsd/internal/httpserver/deps"
)

type categoryJSON struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	BookmarkCount int    `json:"bookmark_count"`
	Dashboard     bool   `json:"dashboard,omitempty"`
}

type categoriesResponse struct {
	ActiveView string         `json:"active_view"`
	Categories []categoryJSON `json:"categories"`
}

// ListCategories returns the sidebar data: all categories with their
// bookmark counts, plus which view is active.
func ListCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.Coordinator.Snapshot()
		resp := categoriesResponse{
			ActiveView: d.Coordinator.ActiveView(),
			Categories: make([]categoryJSON, 0, len(snap.Categories)),
		}
		for _, c := range snap.Categories {
			resp.Categories = append(resp.Categories, categoryJSON{
				ID:            c.ID,
				Name:          c.Name,
				BookmarkCount: len(snap.Bookmarks[c.ID]),
				Dashboard:     c.ID == snap.DashboardID,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory adds a category and auto-selects it.
func CreateCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCategoryRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		cat, err := d.Coordinator.AddCategory(r.Context(), req.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, categoryJSON{ID: cat.ID, Name: cat.Name})
	}
}

// DeleteCategory deletes a category. Destructive: without ?confirmed=true
// it answers 409 with the confirmation prompt to show.
func DeleteCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := d.Coordinator.DeleteCategory(withConfirmed(r), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
