package domain

// Bookmark is a single saved link, owned by exactly one category.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the backend-assigned identifier, normalized to a string.
	// Empty until the backend has confirmed creation.
	ID string

	// ─────────────────────────────
	// Attributes
	// ─────────────────────────────

	// Label is the display label. Non-empty, at most MaxLabelLen characters.
	Label string

	// URL is the link target. Free-form, not strictly validated.
	URL string

	// Username and Password are optional stored credentials.
	// They are round-tripped to the backend and never logged.
	Username string
	Password string

	// IsStarred marks the bookmark for inclusion in the Dashboard view.
	IsStarred bool

	// ─────────────────────────────
	// Ownership & ordering
	// ─────────────────────────────

	// CategoryID references the owning category. Changing it is a move.
	CategoryID string

	// SortOrder is the manual position within the owning category.
	// Persisted by the backend; lower sorts first.
	SortOrder int
}

// BookmarkInput carries the user-editable fields of a bookmark.
type BookmarkInput struct {
	Label    string
	URL      string
	Username string
	Password string
}
