package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/alltabs/alltabsd/internal/httpserver/deps"
	"github.com/alltabs/alltabsd/internal/httpserver/handlers"
)

func init() { Register(registerView) }

func registerView(r chi.Router, d deps.Deps) {
	r.Get("/api/view", handlers.View(d))
	r.Put("/api/view", handlers.SelectView(d))
	r.Post("/api/view/reorder", handlers.Reorder(d))
	r.Get("/api/notifications", handlers.Notifications(d))
}
