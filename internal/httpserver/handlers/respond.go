package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alltabs/alltabsd/internal/coordinator"
	"github.com/alltabs/alltabsd/internal/domain"
)

type errorResponse struct {
	Error        string                      `json:"error"`
	Kind         string                      `json:"kind"`
	Confirmation *coordinator.ConfirmRequest `json:"confirmation,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps the error taxonomy to HTTP statuses. The confirmation
// case carries the prompt wording so the UI can show the dialog and retry
// pre-confirmed.
func writeError(w http.ResponseWriter, err error) {
	var confirmReq *coordinator.ConfirmationRequiredError
	if errors.As(err, &confirmReq) {
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:        confirmReq.Request.Message,
			Kind:         "confirmation_required",
			Confirmation: &confirmReq.Request,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "validation"})
	case errors.Is(err, domain.ErrAuthRequired):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Kind: "auth_required"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Kind: "not_found"})
	case errors.Is(err, domain.ErrRemote):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Kind: "remote"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error(), Kind: "internal"})
	}
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Validationf("invalid request body: %v", err)
	}
	return nil
}
