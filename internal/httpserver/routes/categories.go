package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/alltabs/alltabsd/internal/httpserver/deps"
	"github.com/alltabs/alltabsd/internal/httpserver/handlers"
)

func init() { Register(registerCategories) }

func registerCategories(r chi.Router, d deps.Deps) {
	r.Get("/api/categories", handlers.ListCategories(d))
	r.Post("/api/categories", handlers.CreateCategory(d))
	r.Delete("/api/categories/{id}", handlers.DeleteCategory(d))
}
