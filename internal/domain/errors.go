package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Callers classify failures with errors.Is and wrap with
// fmt.Errorf("...: %w", ...) to add context.
var (
	// ErrValidation covers locally rejected input: empty required fields,
	// deleting the last category, reordering an aggregate view.
	ErrValidation = errors.New("validation failed")

	// ErrAuthRequired marks writes attempted without an authenticated session.
	// Surfaced distinctly so the UI can prompt sign-in.
	ErrAuthRequired = errors.New("authentication required")

	// ErrRemote covers network or backend failures during remote operations.
	ErrRemote = errors.New("remote operation failed")

	// ErrNotFound marks lookups for ids absent from the local store.
	ErrNotFound = errors.New("not found")
)

// Validationf builds an ErrValidation with a formatted reason.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Remotef wraps err as an ErrRemote with a formatted operation description.
func Remotef(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %v", ErrRemote, fmt.Sprintf(format, args...), err)
}
