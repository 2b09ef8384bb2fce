package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/alltabs/alltabsd/internal/httpserver/deps"
	"github.com/alltabs/alltabsd/internal/httpserver/handlers"
)

func init() { Register(registerSystem) }

func registerSystem(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.Get("/readyz", handlers.Readyz(d))
	r.Get("/api/status", handlers.Status(d))
	r.Post("/api/refresh", handlers.Refresh(d))
}
