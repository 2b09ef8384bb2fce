package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/alltabs/alltabsd/internal/httpserver/deps"
	"github.com/alltabs/alltabsd/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Post("/api/bookmarks", handlers.CreateBookmark(d))
	r.Patch("/api/bookmarks/{id}", handlers.UpdateBookmark(d))
	r.Post("/api/bookmarks/{id}/star", handlers.ToggleStar(d))
	r.Delete("/api/bookmarks/{id}", handlers.DeleteBookmark(d))
}
