package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alltabs/alltabsd/internal/domain"
	"github.com/alltabs/alltabsd/internal/logger"
	"github.com/alltabs/alltabsd/internal/utils"
)

const maxErrorBody = 512

// Client talks to the remote bookmark backend over HTTP. It returns
// normalized domain records and classifies failures into the error
// taxonomy; it holds no state of its own.
type Client struct {
	baseURL string
	http    *http.Client
	token   func() string // session token hook, "" when signed out
	log     logger.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Token   func() string
	Logger  logger.Logger
}

// NewClient creates a backend client.
func NewClient(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	token := o.Token
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(o.BaseURL, "/"),
		http:    &http.Client{Timeout: o.Timeout},
		token:   token,
		log:     o.Logger,
	}
}

// ListCategories fetches all categories for the authenticated user.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var payload []categoryPayload
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &payload); err != nil {
		return nil, err
	}
	cats := make([]domain.Category, 0, len(payload))
	for _, p := range payload {
		cats = append(cats, p.toDomain())
	}
	return cats, nil
}

// CreateCategory creates a category with the given name.
func (c *Client) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	var payload categoryPayload
	if err := c.do(ctx, http.MethodPost, "/categories", createCategoryRequest{Name: name}, &payload); err != nil {
		return domain.Category{}, err
	}
	return payload.toDomain(), nil
}

// DeleteCategory deletes a category. The backend cascades to its bookmarks.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+id, nil, nil)
}

// ListBookmarks fetches all bookmarks for the authenticated user as a flat
// list; grouping by category happens locally.
func (c *Client) ListBookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	var payload []bookmarkPayload
	if err := c.do(ctx, http.MethodGet, "/bookmarks", nil, &payload); err != nil {
		return nil, err
	}
	bms := make([]domain.Bookmark, 0, len(payload))
	for _, p := range payload {
		bms = append(bms, p.toDomain())
	}
	return bms, nil
}

// CreateBookmark creates a bookmark in the given category at the given
// manual position.
func (c *Client) CreateBookmark(ctx context.Context, in domain.BookmarkInput, categoryID string, sortOrder int) (domain.Bookmark, error) {
	req := createBookmarkRequest{
		Label:      in.Label,
		URL:        in.URL,
		Username:   in.Username,
		Password:   in.Password,
		CategoryID: wireID(categoryID),
		SortOrder:  sortOrder,
	}
	var payload bookmarkPayload
	if err := c.do(ctx, http.MethodPost, "/bookmarks", req, &payload); err != nil {
		return domain.Bookmark{}, err
	}
	return payload.toDomain(), nil
}

// UpdateBookmark applies a partial update and returns the updated record.
func (c *Client) UpdateBookmark(ctx context.Context, id string, patch BookmarkPatch) (domain.Bookmark, error) {
	var payload bookmarkPayload
	if err := c.do(ctx, http.MethodPatch, "/bookmarks/"+id, patch.toWire(), &payload); err != nil {
		return domain.Bookmark{}, err
	}
	return payload.toDomain(), nil
}

// DeleteBookmark deletes a bookmark.
func (c *Client) DeleteBookmark(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bookmarks/"+id, nil, nil)
}

// SignIn exchanges credentials for a session token.
func (c *Client) SignIn(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signin", credentialsRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	if resp.value() == "" {
		return "", domain.Remotef(fmt.Errorf("empty token"), "POST /auth/signin")
	}
	return resp.value(), nil
}

// SignUp registers a new account and returns its session token.
func (c *Client) SignUp(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", credentialsRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	if resp.value() == "" {
		return "", domain.Remotef(fmt.Errorf("empty token"), "POST /auth/signup")
	}
	return resp.value(), nil
}

// do executes one backend request: JSON in, JSON out, Bearer token and a
// correlation id attached, failures classified into the error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("backend request failed",
			logger.String("method", method),
			logger.String("path", path),
			logger.String("request_id", reqID),
			logger.Error(err))
		return domain.Remotef(err, "%s %s", method, path)
	}
	defer utils.Close(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s %s: status %d", domain.ErrAuthRequired, method, path, resp.StatusCode)
	case resp.StatusCode >= 400:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Debug("backend rejected request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", resp.StatusCode),
			logger.String("request_id", reqID))
		return domain.Remotef(
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
			"%s %s", method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.Remotef(err, "%s %s: decode response", method, path)
	}
	return nil
}
