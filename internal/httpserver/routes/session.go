package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/alltabs/alltabsd/internal/httpserver/deps"
	"github.com/alltabs/alltabsd/internal/httpserver/handlers"
)

func init() { Register(registerSession) }

func registerSession(r chi.Router, d deps.Deps) {
	r.Get("/api/session", handlers.Session(d))
	r.Post("/api/session", handlers.SignIn(d))
	r.Post("/api/session/signup", handlers.SignUp(d))
	r.Delete("/api/session", handlers.SignOut(d))
}
