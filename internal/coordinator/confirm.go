package coordinator

import (
	"context"
	"fmt"
)

// ConfirmRequest carries the wording of a confirmation prompt. The wording
// is owned here because it depends on reconciliation state: removing a
// starred bookmark from the Dashboard is an unstar, deleting it from its
// owning category is irreversible, and only the coordinator can tell the
// two apart.
type ConfirmRequest struct {
	Title       string `json:"title"`
	Message     string `json:"message"`
	ConfirmText string `json:"confirm_text"`
	Dangerous   bool   `json:"dangerous"`
}

// Confirmer gates destructive actions. Returning false aborts the action
// silently; an error aborts it loudly.
type Confirmer interface {
	Confirm(ctx context.Context, req ConfirmRequest) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, req ConfirmRequest) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, req ConfirmRequest) (bool, error) {
	return f(ctx, req)
}

// ConfirmationRequiredError is returned by confirmers that cannot prompt
// inline (the HTTP API): it carries the prompt so the caller can show it
// and retry the action pre-confirmed.
type ConfirmationRequiredError struct {
	Request ConfirmRequest
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("confirmation required: %s", e.Request.Title)
}

// declineAll is the default confirmer: refuses every destructive action so
// a miswired coordinator can never delete anything.
type declineAll struct{}

func (declineAll) Confirm(_ context.Context, req ConfirmRequest) (bool, error) {
	return false, &ConfirmationRequiredError{Request: req}
}
