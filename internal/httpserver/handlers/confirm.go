package handlers

import (
	"context"
	"net/http"

	"github.com/alltabs/alltabsd/internal/coordinator"
)

type ctxKey int

const confirmedKey ctxKey = iota

// withConfirmed records whether the request carried ?confirmed=true.
func withConfirmed(r *http.Request) context.Context {
	confirmed := r.URL.Query().Get("confirmed") == "true"
	return context.WithValue(r.Context(), confirmedKey, confirmed)
}

// Confirmer gates destructive actions over HTTP: the confirmation dialog
// lives in the UI, so a request is either pre-confirmed or answered with
// the prompt wording to show (409 via ConfirmationRequiredError).
var Confirmer = coordinator.ConfirmFunc(
	func(ctx context.Context, req coordinator.ConfirmRequest) (bool, error) {
		if confirmed, _ := ctx.Value(confirmedKey).(bool); confirmed {
			return true, nil
		}
		return false, &coordinator.ConfirmationRequiredError{Request: req}
	})
