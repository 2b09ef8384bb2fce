package handlers

import (
	"net/http"

	"github.com/alltabs/alltabsd/internal/httpserver/deps"
)

type sessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

// Session reports whether a signed-in session is held.
func Session(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sessionResponse{
			Authenticated: d.Gate.Authenticated(),
		})
	}
}

type credentialsJSON struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn exchanges credentials for a session. The sign-in triggers the
// initial load through the gate's transition signal.
func SignIn(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsJSON
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := d.Coordinator.SignIn(r.Context(), req.Email, req.Password); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{Authenticated: true})
	}
}

// SignUp registers an account and signs it in.
func SignUp(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsJSON
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := d.Coordinator.SignUp(r.Context(), req.Email, req.Password); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sessionResponse{Authenticated: true})
	}
}

// SignOut clears the session and all local state.
func SignOut(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Coordinator.SignOut(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}
