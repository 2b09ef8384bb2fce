package handlers

import (
	"net/http"

	"github.com/alltabs/alltabsd/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, readyzResponse{
			Ready: true,
		})
	}
}
