package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alltabs/alltabsd/internal/domain"
	"github.com/alltabs/alltabsd/internal/httpserver/deps"
)

type bookmarkRequest struct {
	Label      string `json:"label"`
	URL        string `json:"url"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	CategoryID string `json:"category_id"`
}

func (r bookmarkRequest) input() domain.BookmarkInput {
	return domain.BookmarkInput{
		Label:    r.Label,
		URL:      r.URL,
		Username: r.Username,
		Password: r.Password,
	}
}

type bookmarkJSON struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	URL        string `json:"url"`
	Username   string `json:"username,omitempty"`
	Password   string `json:"password,omitempty"`
	IsStarred  bool   `json:"is_starred"`
	CategoryID string `json:"category_id"`
}

func toBookmarkJSON(b domain.Bookmark) bookmarkJSON {
	return bookmarkJSON{
		ID:         b.ID,
		Label:      b.Label,
		URL:        b.URL,
		Username:   b.Username,
		Password:   b.Password,
		IsStarred:  b.IsStarred,
		CategoryID: b.CategoryID,
	}
}

// CreateBookmark adds a bookmark to the requested category.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookmarkRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		b, err := d.Coordinator.AddBookmark(r.Context(), req.input(), req.CategoryID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toBookmarkJSON(b))
	}
}

// UpdateBookmark edits a bookmark's fields; a different category_id moves
// it to the end of the destination category.
func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req bookmarkRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		b, err := d.Coordinator.EditBookmark(r.Context(), id, req.input(), req.CategoryID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBookmarkJSON(b))
	}
}

// ToggleStar flips a bookmark's starred flag.
func ToggleStar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		b, err := d.Coordinator.ToggleStar(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBookmarkJSON(b))
	}
}

// DeleteBookmark removes a bookmark. Destructive: without ?confirmed=true
// it answers 409 with the context-dependent prompt (true delete vs remove
// from Dashboard).
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := d.Coordinator.DeleteBookmark(withConfirmed(r), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
