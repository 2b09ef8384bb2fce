package domain

// Category groups bookmarks under a user-chosen name.
// Categories are owned by a single user and assigned their ID by the backend.
type Category struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the backend-assigned identifier, normalized to a string.
	ID string

	// ─────────────────────────────
	// Attributes
	// ─────────────────────────────

	// Name is the display name. Non-empty, at most MaxNameLen characters.
	Name string
}
