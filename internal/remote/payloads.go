package remote

import (
	"encoding/json"

	"github.com/alltabs/alltabsd/internal/domain"
)

// The backend speaks its own field names (category_name, is_highlighted)
// and assigns ids that may arrive as numbers or strings. Everything is
// normalized to the domain types at this boundary and nowhere else.

// wireID round-trips an opaque identifier: unmarshals either a JSON number
// or string, marshals back in the same shape the backend expects.
type wireID string

func (w wireID) MarshalJSON() ([]byte, error) {
	if isDigits(string(w)) {
		return []byte(w), nil
	}
	return json.Marshal(string(w))
}

func (w *wireID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*w = wireID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*w = wireID(s)
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type categoryPayload struct {
	ID   wireID `json:"id"`
	Name string `json:"category_name"`
}

func (p categoryPayload) toDomain() domain.Category {
	return domain.Category{ID: string(p.ID), Name: p.Name}
}

type bookmarkPayload struct {
	ID            wireID `json:"id"`
	Label         string `json:"label"`
	URL           string `json:"url"`
	Username      string `json:"username,omitempty"`
	Password      string `json:"password,omitempty"`
	CategoryID    wireID `json:"category_id"`
	IsHighlighted bool   `json:"is_highlighted"`
	SortOrder     int    `json:"sort_order"`
}

func (p bookmarkPayload) toDomain() domain.Bookmark {
	return domain.Bookmark{
		ID:         string(p.ID),
		Label:      p.Label,
		URL:        p.URL,
		Username:   p.Username,
		Password:   p.Password,
		CategoryID: string(p.CategoryID),
		IsStarred:  p.IsHighlighted,
		SortOrder:  p.SortOrder,
	}
}

type createCategoryRequest struct {
	Name string `json:"category_name"`
}

type createBookmarkRequest struct {
	Label      string `json:"label"`
	URL        string `json:"url"`
	Username   string `json:"username,omitempty"`
	Password   string `json:"password,omitempty"`
	CategoryID wireID `json:"category_id"`
	SortOrder  int    `json:"sort_order"`
}

// BookmarkPatch is a partial bookmark update. Nil fields are left untouched.
type BookmarkPatch struct {
	Label      *string
	URL        *string
	Username   *string
	Password   *string
	CategoryID *string
	IsStarred  *bool
	SortOrder  *int
}

type patchBookmarkRequest struct {
	Label         *string `json:"label,omitempty"`
	URL           *string `json:"url,omitempty"`
	Username      *string `json:"username,omitempty"`
	Password      *string `json:"password,omitempty"`
	CategoryID    *wireID `json:"category_id,omitempty"`
	IsHighlighted *bool   `json:"is_highlighted,omitempty"`
	SortOrder     *int    `json:"sort_order,omitempty"`
}

func (p BookmarkPatch) toWire() patchBookmarkRequest {
	req := patchBookmarkRequest{
		Label:         p.Label,
		URL:           p.URL,
		Username:      p.Username,
		Password:      p.Password,
		IsHighlighted: p.IsStarred,
		SortOrder:     p.SortOrder,
	}
	if p.CategoryID != nil {
		id := wireID(*p.CategoryID)
		req.CategoryID = &id
	}
	return req
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
}

func (t tokenResponse) value() string {
	if t.AccessToken != "" {
		return t.AccessToken
	}
	return t.Token
}
