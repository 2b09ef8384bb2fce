package coordinator

import (
	"context"
	"fmt"
	"sync"

	"github.com/alltabs/alltabsd/internal/domain"
	"github.com/alltabs/alltabsd/internal/logger"
	"github.com/alltabs/alltabsd/internal/remote"
	"github.com/alltabs/alltabsd/internal/session"
	"github.com/alltabs/alltabsd/internal/store"
)

// RemoteAPI is the backend capability the coordinator consumes.
// *remote.Client satisfies it; tests plug an in-memory fake.
type RemoteAPI interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListBookmarks(ctx context.Context) ([]domain.Bookmark, error)
	CreateBookmark(ctx context.Context, in domain.BookmarkInput, categoryID string, sortOrder int) (domain.Bookmark, error)
	UpdateBookmark(ctx context.Context, id string, patch remote.BookmarkPatch) (domain.Bookmark, error)
	DeleteBookmark(ctx context.Context, id string) error
	SignIn(ctx context.Context, email, password string) (string, error)
	SignUp(ctx context.Context, email, password string) (string, error)
}

// SnapshotCache persists last-known-good state across restarts. Optional;
// writes are best effort, the in-memory store stays the primary source.
type SnapshotCache interface {
	Save(ctx context.Context, cats []domain.Category, bms []domain.Bookmark) error
	Flush(ctx context.Context) error
}

// Coordinator translates user intents into remote calls and store
// reconciliation. Consistency strategy: full reload after every successful
// mutation rather than optimistic patching - single-record upserts before
// the reload are advisory only. It also owns the ephemeral Selected View
// and search text, which the delete-vs-unstar and reorder rules depend on.
type Coordinator struct {
	remote  RemoteAPI
	store   *store.Store
	gate    *session.Gate
	confirm Confirmer
	notify  Notifier
	cache   SnapshotCache // may be nil
	log     logger.Logger

	viewMu     sync.RWMutex
	activeView string
	search     string
}

// Options configures a Coordinator. Remote, Store, Gate and Logger are
// required; Confirmer defaults to declining every destructive action and
// Notifier to discarding messages.
type Options struct {
	Remote   RemoteAPI
	Store    *store.Store
	Gate     *session.Gate
	Confirm  Confirmer
	Notifier Notifier
	Cache    SnapshotCache
	Logger   logger.Logger
}

// New creates a Coordinator with the Dashboard as the active view.
func New(o Options) *Coordinator {
	confirm := o.Confirm
	if confirm == nil {
		confirm = declineAll{}
	}
	notifier := o.Notifier
	if notifier == nil {
		notifier = discard{}
	}
	return &Coordinator{
		remote:     o.Remote,
		store:      o.Store,
		gate:       o.Gate,
		confirm:    confirm,
		notify:     notifier,
		cache:      o.Cache,
		log:        o.Logger,
		activeView: domain.DashboardViewID,
	}
}

// ─────────────────────────────────────────────────────────────────
// Session
// ─────────────────────────────────────────────────────────────────

// SignIn exchanges credentials for a session token and installs it.
// The gate's transition signal drives the initial load.
func (c *Coordinator) SignIn(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return domain.Validationf("email and password are required")
	}
	token, err := c.remote.SignIn(ctx, email, password)
	if err != nil {
		return c.fail("sign-in failed", err)
	}
	c.gate.SetToken(token)
	return nil
}

// SignUp registers an account and signs it in.
func (c *Coordinator) SignUp(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return domain.Validationf("email and password are required")
	}
	token, err := c.remote.SignUp(ctx, email, password)
	if err != nil {
		return c.fail("sign-up failed", err)
	}
	c.gate.SetToken(token)
	return nil
}

// SignOut clears the session, the store and the cached snapshot.
func (c *Coordinator) SignOut(ctx context.Context) {
	c.gate.Clear()
	c.store.Clear()
	c.setView(domain.DashboardViewID)
	if c.cache != nil {
		if err := c.cache.Flush(ctx); err != nil {
			c.log.Warn("failed to flush snapshot cache on sign-out", logger.Error(err))
		}
	}
	c.log.Info("signed out, local state cleared")
}

// ─────────────────────────────────────────────────────────────────
// Refresh
// ─────────────────────────────────────────────────────────────────

// Refresh replaces the store wholesale from the backend. On failure the
// store keeps its last-known-good state. Safe to call repeatedly: a full
// replace, never a merge. A canceled ctx discards the late response
// instead of applying it.
func (c *Coordinator) Refresh(ctx context.Context) error {
	if !c.gate.Authenticated() {
		return fmt.Errorf("%w: refresh needs a signed-in session", domain.ErrAuthRequired)
	}

	cats, err := c.remote.ListCategories(ctx)
	if err != nil {
		return c.fail("failed to refresh", err)
	}
	bms, err := c.remote.ListBookmarks(ctx)
	if err != nil {
		return c.fail("failed to refresh", err)
	}
	if ctx.Err() != nil {
		return ctx.Err() // caller went away mid-flight, drop the response
	}

	c.store.ReplaceAll(cats, bms)
	c.ensureViewValid()

	if c.cache != nil {
		if err := c.cache.Save(ctx, cats, bms); err != nil {
			c.log.Warn("failed to cache snapshot", logger.Error(err))
		}
	}

	c.log.Debug("state refreshed",
		logger.Int("categories", len(cats)),
		logger.Int("bookmarks", c.store.BookmarkCount()))
	return nil
}

// refreshAfterMutation reloads full state after a successful mutation.
// The mutation itself already succeeded, so a failed reload is reported
// but does not fail the operation: the advisory store patch stands until
// the next refresh lands.
func (c *Coordinator) refreshAfterMutation(ctx context.Context) {
	if err := c.Refresh(ctx); err != nil && ctx.Err() == nil {
		c.log.Warn("refresh after mutation failed, keeping advisory local state",
			logger.Error(err))
	}
}

// ─────────────────────────────────────────────────────────────────
// View state
// ─────────────────────────────────────────────────────────────────

// SelectView switches the active view to a category id or the Dashboard.
// Switching resets the search filter.
func (c *Coordinator) SelectView(id string) error {
	if id != domain.DashboardViewID {
		if _, ok := c.store.Category(id); !ok {
			return fmt.Errorf("%w: view %q", domain.ErrNotFound, id)
		}
	}
	c.setView(id)
	return nil
}

// SetSearch updates the free-text search filter for the active view.
func (c *Coordinator) SetSearch(query string) {
	c.viewMu.Lock()
	c.search = query
	c.viewMu.Unlock()
}

// ActiveView returns the current view id.
func (c *Coordinator) ActiveView() string {
	c.viewMu.RLock()
	defer c.viewMu.RUnlock()
	return c.activeView
}

// SearchQuery returns the current search filter.
func (c *Coordinator) SearchQuery() string {
	c.viewMu.RLock()
	defer c.viewMu.RUnlock()
	return c.search
}

// View projects the active view with the active search filter.
func (c *Coordinator) View() []domain.ViewItem {
	c.viewMu.RLock()
	view, query := c.activeView, c.search
	c.viewMu.RUnlock()
	return domain.Project(c.store.Snapshot(), view, query)
}

// Snapshot exposes the current reconciled state for read-only consumers.
func (c *Coordinator) Snapshot() domain.Snapshot {
	return c.store.Snapshot()
}

// Categories returns all categories in backend list order.
func (c *Coordinator) Categories() []domain.Category {
	return c.store.Categories()
}

func (c *Coordinator) setView(id string) {
	c.viewMu.Lock()
	c.activeView = id
	c.search = ""
	c.viewMu.Unlock()
}

// ensureViewValid falls back to the Dashboard when the active category
// disappeared from a reload.
func (c *Coordinator) ensureViewValid() {
	view := c.ActiveView()
	if view == domain.DashboardViewID {
		return
	}
	if _, ok := c.store.Category(view); !ok {
		c.setView(domain.DashboardViewID)
	}
}

// fail surfaces a remote failure as a user-visible notification and
// returns the classified error. Nothing propagates past the coordinator
// unclassified.
func (c *Coordinator) fail(msg string, err error) error {
	c.notify.Notify("error", msg)
	c.log.Error(msg, logger.Error(err))
	return err
}
