package coordinator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/alltabs/alltabsd/internal/domain"
	"github.com/alltabs/alltabsd/internal/logger"
	"github.com/alltabs/alltabsd/internal/remote"
	"github.com/alltabs/alltabsd/internal/session"
	"github.com/alltabs/alltabsd/internal/store"
)

// fakeBackend is an in-memory RemoteAPI. Mutations change its own state so
// the follow-up reload observes what a real backend would return.
type fakeBackend struct {
	mu     sync.Mutex
	cats   []domain.Category
	bms    []domain.Bookmark
	nextID int
	calls  []string
	err    error // when set, every call fails with it
}

func (f *fakeBackend) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBackend) ListCategories(ctx context.Context) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListCategories"); err != nil {
		return nil, err
	}
	return append([]domain.Category(nil), f.cats...), nil
}

func (f *fakeBackend) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateCategory"); err != nil {
		return domain.Category{}, err
	}
	f.nextID++
	cat := domain.Category{ID: "cat-" + strconv.Itoa(f.nextID), Name: name}
	f.cats = append(f.cats, cat)
	return cat, nil
}

func (f *fakeBackend) DeleteCategory(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteCategory"); err != nil {
		return err
	}
	for i, c := range f.cats {
		if c.ID == id {
			f.cats = append(f.cats[:i], f.cats[i+1:]...)
			break
		}
	}
	kept := f.bms[:0]
	for _, b := range f.bms {
		if b.CategoryID != id {
			kept = append(kept, b)
		}
	}
	f.bms = kept
	return nil
}

func (f *fakeBackend) ListBookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListBookmarks"); err != nil {
		return nil, err
	}
	return append([]domain.Bookmark(nil), f.bms...), nil
}

func (f *fakeBackend) CreateBookmark(ctx context.Context, in domain.BookmarkInput, categoryID string, sortOrder int) (domain.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateBookmark"); err != nil {
		return domain.Bookmark{}, err
	}
	f.nextID++
	b := domain.Bookmark{
		ID:         "bm-" + strconv.Itoa(f.nextID),
		Label:      in.Label,
		URL:        in.URL,
		Username:   in.Username,
		Password:   in.Password,
		CategoryID: categoryID,
		SortOrder:  sortOrder,
	}
	f.bms = append(f.bms, b)
	return b, nil
}

func (f *fakeBackend) UpdateBookmark(ctx context.Context, id string, patch remote.BookmarkPatch) (domain.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateBookmark"); err != nil {
		return domain.Bookmark{}, err
	}
	for i := range f.bms {
		if f.bms[i].ID != id {
			continue
		}
		b := &f.bms[i]
		if patch.Label != nil {
			b.Label = *patch.Label
		}
		if patch.URL != nil {
			b.URL = *patch.URL
		}
		if patch.Username != nil {
			b.Username = *patch.Username
		}
		if patch.Password != nil {
			b.Password = *patch.Password
		}
		if patch.CategoryID != nil {
			b.CategoryID = *patch.CategoryID
		}
		if patch.IsStarred != nil {
			b.IsStarred = *patch.IsStarred
		}
		if patch.SortOrder != nil {
			b.SortOrder = *patch.SortOrder
		}
		return *b, nil
	}
	return domain.Bookmark{}, fmt.Errorf("bookmark %s not found", id)
}

func (f *fakeBackend) DeleteBookmark(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteBookmark"); err != nil {
		return err
	}
	for i, b := range f.bms {
		if b.ID == id {
			f.bms = append(f.bms[:i], f.bms[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeBackend) SignIn(ctx context.Context, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("SignIn"); err != nil {
		return "", err
	}
	return "session-token", nil
}

func (f *fakeBackend) SignUp(ctx context.Context, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("SignUp"); err != nil {
		return "", err
	}
	return "session-token", nil
}

func acceptAll(ctx context.Context, req ConfirmRequest) (bool, error) { return true, nil }

func rejectAll(ctx context.Context, req ConfirmRequest) (bool, error) { return false, nil }

type fixture struct {
	coord   *Coordinator
	backend *fakeBackend
	store   *store.Store
	gate    *session.Gate
}

func newFixture(t *testing.T, confirm Confirmer) *fixture {
	t.Helper()
	log := logger.New("error", false)
	backend := &fakeBackend{
		cats: []domain.Category{
			{ID: "dash", Name: "Dashboard"},
			{ID: "work", Name: "Work"},
		},
		bms: []domain.Bookmark{
			{ID: "b1", Label: "Mail", URL: "https://mail.example.com", CategoryID: "dash", SortOrder: 0},
			{ID: "b2", Label: "Wiki", URL: "https://wiki.example.com", CategoryID: "work", SortOrder: 0, IsStarred: true},
			{ID: "b3", Label: "CI", URL: "https://ci.example.com", CategoryID: "work", SortOrder: 1},
		},
	}
	st := store.New()
	gate := session.New(log)
	coord := New(Options{
		Remote:  backend,
		Store:   st,
		Gate:    gate,
		Confirm: confirm,
		Logger:  log,
	})
	return &fixture{coord: coord, backend: backend, store: st, gate: gate}
}

func signedIn(t *testing.T, confirm Confirmer) *fixture {
	t.Helper()
	f := newFixture(t, confirm)
	f.gate.SetToken("tok")
	if err := f.coord.Refresh(context.Background()); err != nil {
		t.Fatalf("initial refresh: %v", err)
	}
	return f
}

// ─────────────────────────────────────────────────────────────────
// Session and refresh
// ─────────────────────────────────────────────────────────────────

func TestSignInInstallsToken(t *testing.T) {
	f := newFixture(t, nil)

	if err := f.coord.SignIn(context.Background(), "user@example.com", "pw"); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if !f.gate.Authenticated() {
		t.Error("gate should be authenticated after sign-in")
	}
	if f.gate.Token() != "session-token" {
		t.Errorf("Token() = %q", f.gate.Token())
	}
}

func TestSignInEmptyCredentials(t *testing.T) {
	f := newFixture(t, nil)

	err := f.coord.SignIn(context.Background(), "", "pw")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
	if f.backend.callCount() != 0 {
		t.Error("empty credentials must not reach the backend")
	}
}

func TestSignOutClearsEverything(t *testing.T) {
	f := signedIn(t, nil)
	if err := f.coord.SelectView("work"); err != nil {
		t.Fatalf("SelectView: %v", err)
	}

	f.coord.SignOut(context.Background())

	if f.gate.Authenticated() {
		t.Error("still authenticated after sign-out")
	}
	if f.store.CategoryCount() != 0 {
		t.Error("store not cleared after sign-out")
	}
	if f.coord.ActiveView() != domain.DashboardViewID {
		t.Errorf("ActiveView() = %q, want dashboard", f.coord.ActiveView())
	}
}

func TestRefreshRequiresAuth(t *testing.T) {
	f := newFixture(t, nil)

	err := f.coord.Refresh(context.Background())
	if !errors.Is(err, domain.ErrAuthRequired) {
		t.Errorf("error = %v, want ErrAuthRequired", err)
	}
	if f.backend.callCount() != 0 {
		t.Error("signed-out refresh must not reach the backend")
	}
}

func TestRefreshFailureKeepsLastKnownGood(t *testing.T) {
	f := signedIn(t, nil)
	before := f.store.BookmarkCount()

	f.backend.mu.Lock()
	f.backend.err = errors.New("backend down")
	f.backend.mu.Unlock()

	if err := f.coord.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh() should fail when the backend is down")
	}
	if f.store.BookmarkCount() != before {
		t.Errorf("store changed on failed refresh: %d bookmarks, want %d",
			f.store.BookmarkCount(), before)
	}
}

func TestRefreshDiscardsLateResponseOnCancel(t *testing.T) {
	f := signedIn(t, nil)
	before := f.coord.Snapshot()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.backend.mu.Lock()
	f.backend.bms = nil // a late response that must not be applied
	f.backend.mu.Unlock()

	if err := f.coord.Refresh(ctx); err == nil {
		t.Fatal("Refresh() with canceled ctx should return ctx.Err()")
	}
	after := f.coord.Snapshot()
	if len(after.Bookmarks["work"]) != len(before.Bookmarks["work"]) {
		t.Error("canceled refresh applied its response")
	}
}

func TestRefreshFallsBackWhenActiveCategoryVanishes(t *testing.T) {
	f := signedIn(t, nil)
	if err := f.coord.SelectView("work"); err != nil {
		t.Fatalf("SelectView: %v", err)
	}

	f.backend.mu.Lock()
	f.backend.cats = f.backend.cats[:1] // "work" deleted on another device
	f.backend.bms = f.backend.bms[:1]
	f.backend.mu.Unlock()

	if err := f.coord.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if f.coord.ActiveView() != domain.DashboardViewID {
		t.Errorf("ActiveView() = %q, want dashboard fallback", f.coord.ActiveView())
	}
}

// ─────────────────────────────────────────────────────────────────
// View state
// ─────────────────────────────────────────────────────────────────

func TestSelectViewUnknownCategory(t *testing.T) {
	f := signedIn(t, nil)

	err := f.coord.SelectView("ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSelectViewResetsSearch(t *testing.T) {
	f := signedIn(t, nil)
	f.coord.SetSearch("wiki")

	if err := f.coord.SelectView("work"); err != nil {
		t.Fatalf("SelectView: %v", err)
	}
	if f.coord.SearchQuery() != "" {
		t.Errorf("SearchQuery() = %q, want empty after view switch", f.coord.SearchQuery())
	}
}

func TestViewProjectsDashboard(t *testing.T) {
	f := signedIn(t, nil)

	items := f.coord.View()
	// Bucket-native Mail first, then starred Wiki from Work.
	if len(items) != 2 {
		t.Fatalf("View() = %d items, want 2", len(items))
	}
	if items[0].ID != "b1" || items[1].ID != "b2" {
		t.Errorf("View() order = %s, %s; want b1, b2", items[0].ID, items[1].ID)
	}
}

// ─────────────────────────────────────────────────────────────────
// Category mutations
// ─────────────────────────────────────────────────────────────────

func TestAddCategorySelectsIt(t *testing.T) {
	f := signedIn(t, nil)

	cat, err := f.coord.AddCategory(context.Background(), "  Reading  ")
	if err != nil {
		t.Fatalf("AddCategory() error = %v", err)
	}
	if cat.Name != "Reading" {
		t.Errorf("name = %q, want trimmed Reading", cat.Name)
	}
	if f.coord.ActiveView() != cat.ID {
		t.Errorf("ActiveView() = %q, want %q", f.coord.ActiveView(), cat.ID)
	}
	if _, ok := f.store.Category(cat.ID); !ok {
		t.Error("created category missing from the store")
	}
}

func TestAddCategoryValidation(t *testing.T) {
	f := signedIn(t, nil)
	before := f.backend.callCount()

	_, err := f.coord.AddCategory(context.Background(), "   ")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
	if f.backend.callCount() != before {
		t.Error("invalid name must not reach the backend")
	}
}

func TestMutationsRequireAuth(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	checks := map[string]error{}
	_, err := f.coord.AddCategory(ctx, "X")
	checks["AddCategory"] = err
	checks["DeleteCategory"] = f.coord.DeleteCategory(ctx, "work")
	_, err = f.coord.AddBookmark(ctx, domain.BookmarkInput{Label: "x", URL: "https://x"}, "work")
	checks["AddBookmark"] = err
	_, err = f.coord.EditBookmark(ctx, "b1", domain.BookmarkInput{Label: "x", URL: "https://x"}, "work")
	checks["EditBookmark"] = err
	_, err = f.coord.ToggleStar(ctx, "b1")
	checks["ToggleStar"] = err
	checks["DeleteBookmark"] = f.coord.DeleteBookmark(ctx, "b1")
	checks["Reorder"] = f.coord.Reorder(ctx, 0, 1)

	for op, err := range checks {
		if !errors.Is(err, domain.ErrAuthRequired) {
			t.Errorf("%s signed out: error = %v, want ErrAuthRequired", op, err)
		}
	}
	if f.backend.callCount() != 0 {
		t.Errorf("signed-out mutations reached the backend: %v", f.backend.calls)
	}
}

func TestDeleteLastCategoryRejectedLocally(t *testing.T) {
	confirmCalled := false
	f := newFixture(t, ConfirmFunc(func(ctx context.Context, req ConfirmRequest) (bool, error) {
		confirmCalled = true
		return true, nil
	}))
	f.backend.mu.Lock()
	f.backend.cats = []domain.Category{{ID: "only", Name: "Only"}}
	f.backend.bms = nil
	f.backend.mu.Unlock()
	f.gate.SetToken("tok")
	if err := f.coord.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	before := f.backend.callCount()

	err := f.coord.DeleteCategory(context.Background(), "only")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	if confirmCalled {
		t.Error("last-category guard must fire before the confirmation prompt")
	}
	if f.backend.callCount() != before {
		t.Error("last-category guard must fire before any network call")
	}
	if _, ok := f.store.Category("only"); !ok {
		t.Error("category must survive the rejected delete")
	}
}

func TestDeleteCategoryDeclined(t *testing.T) {
	f := signedIn(t, ConfirmFunc(rejectAll))
	before := f.backend.callCount()

	if err := f.coord.DeleteCategory(context.Background(), "work"); err != nil {
		t.Fatalf("declined delete should return nil, got %v", err)
	}
	if _, ok := f.store.Category("work"); !ok {
		t.Error("declined delete removed the category")
	}
	if f.backend.callCount() != before {
		t.Error("declined delete must not reach the backend")
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	f := signedIn(t, ConfirmFunc(acceptAll))

	if err := f.coord.DeleteCategory(context.Background(), "work"); err != nil {
		t.Fatalf("DeleteCategory() error = %v", err)
	}
	if _, ok := f.store.Category("work"); ok {
		t.Error("category survived the delete")
	}
	if _, ok := f.store.Bookmark("b2"); ok {
		t.Error("owned bookmark survived the cascade")
	}
}

func TestDeleteActiveCategoryFallsBackToDashboard(t *testing.T) {
	f := signedIn(t, ConfirmFunc(acceptAll))
	if err := f.coord.SelectView("work"); err != nil {
		t.Fatalf("SelectView: %v", err)
	}

	if err := f.coord.DeleteCategory(context.Background(), "work"); err != nil {
		t.Fatalf("DeleteCategory() error = %v", err)
	}
	if f.coord.ActiveView() != domain.DashboardViewID {
		t.Errorf("ActiveView() = %q, want dashboard", f.coord.ActiveView())
	}
}

// ─────────────────────────────────────────────────────────────────
// Bookmark mutations
// ─────────────────────────────────────────────────────────────────

func TestAddBookmarkAppendsAtEnd(t *testing.T) {
	f := signedIn(t, nil)

	b, err := f.coord.AddBookmark(context.Background(),
		domain.BookmarkInput{Label: "New", URL: "https://new.example.com"}, "work")
	if err != nil {
		t.Fatalf("AddBookmark() error = %v", err)
	}
	if b.IsStarred {
		t.Error("new bookmark must start unstarred")
	}

	list := f.store.CategoryBookmarks("work")
	if list[len(list)-1].ID != b.ID {
		t.Errorf("new bookmark not at the end of the manual order: %v", list)
	}
}

func TestAddBookmarkUnknownCategory(t *testing.T) {
	f := signedIn(t, nil)
	before := f.backend.callCount()

	_, err := f.coord.AddBookmark(context.Background(),
		domain.BookmarkInput{Label: "X", URL: "https://x.example.com"}, "ghost")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
	if f.backend.callCount() != before {
		t.Error("unknown target category must not reach the backend")
	}
}

func TestEditBookmarkInPlaceKeepsPosition(t *testing.T) {
	f := signedIn(t, nil)

	_, err := f.coord.EditBookmark(context.Background(), "b2",
		domain.BookmarkInput{Label: "Wiki v2", URL: "https://wiki.example.com"}, "work")
	if err != nil {
		t.Fatalf("EditBookmark() error = %v", err)
	}

	list := f.store.CategoryBookmarks("work")
	if list[0].ID != "b2" || list[0].Label != "Wiki v2" {
		t.Errorf("in-place edit moved the bookmark: %v", list)
	}
}

func TestEditBookmarkMoveAppendsAtDestinationEnd(t *testing.T) {
	f := signedIn(t, nil)

	_, err := f.coord.EditBookmark(context.Background(), "b2",
		domain.BookmarkInput{Label: "Wiki", URL: "https://wiki.example.com"}, "dash")
	if err != nil {
		t.Fatalf("EditBookmark() error = %v", err)
	}

	dash := f.store.CategoryBookmarks("dash")
	if dash[len(dash)-1].ID != "b2" {
		t.Errorf("moved bookmark must land at the destination end: %v", dash)
	}
	for _, b := range f.store.CategoryBookmarks("work") {
		if b.ID == "b2" {
			t.Error("moved bookmark still present in the source category")
		}
	}
}

func TestEditBookmarkMoveLandsLastWithSparseOrders(t *testing.T) {
	f := newFixture(t, nil)
	// Gapped positions in the destination, as left behind by a delete in
	// the middle of the sequence.
	f.backend.mu.Lock()
	f.backend.bms = []domain.Bookmark{
		{ID: "b1", Label: "Mail", URL: "https://mail.example.com", CategoryID: "dash", SortOrder: 0},
		{ID: "b2", Label: "Wiki", URL: "https://wiki.example.com", CategoryID: "work", SortOrder: 0},
		{ID: "b3", Label: "CI", URL: "https://ci.example.com", CategoryID: "work", SortOrder: 5},
	}
	f.backend.mu.Unlock()
	f.gate.SetToken("tok")
	if err := f.coord.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	moved, err := f.coord.EditBookmark(context.Background(), "b1",
		domain.BookmarkInput{Label: "Mail", URL: "https://mail.example.com"}, "work")
	if err != nil {
		t.Fatalf("EditBookmark() error = %v", err)
	}
	if moved.SortOrder <= 5 {
		t.Errorf("moved SortOrder = %d, must exceed the highest held position 5", moved.SortOrder)
	}

	// The follow-up reload resorts by persisted positions; the move must
	// still be last.
	if err := f.coord.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	list := f.store.CategoryBookmarks("work")
	if list[len(list)-1].ID != "b1" {
		ids := make([]string, len(list))
		for i, b := range list {
			ids[i] = b.ID
		}
		t.Errorf("work order after move = %v, want b1 last", ids)
	}
}

func TestAddBookmarkLandsLastWithSparseOrders(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.mu.Lock()
	f.backend.bms = []domain.Bookmark{
		{ID: "b2", Label: "Wiki", URL: "https://wiki.example.com", CategoryID: "work", SortOrder: 0},
		{ID: "b3", Label: "CI", URL: "https://ci.example.com", CategoryID: "work", SortOrder: 5},
	}
	f.backend.mu.Unlock()
	f.gate.SetToken("tok")
	if err := f.coord.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	b, err := f.coord.AddBookmark(context.Background(),
		domain.BookmarkInput{Label: "New", URL: "https://new.example.com"}, "work")
	if err != nil {
		t.Fatalf("AddBookmark() error = %v", err)
	}
	if b.SortOrder <= 5 {
		t.Errorf("new SortOrder = %d, must exceed the highest held position 5", b.SortOrder)
	}

	if err := f.coord.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	list := f.store.CategoryBookmarks("work")
	if list[len(list)-1].ID != b.ID {
		t.Errorf("new bookmark not last after reload: %v", list)
	}
}

func TestToggleStarNeedsNoConfirmation(t *testing.T) {
	f := signedIn(t, ConfirmFunc(func(ctx context.Context, req ConfirmRequest) (bool, error) {
		t.Error("ToggleStar must not prompt for confirmation")
		return false, nil
	}))

	b, err := f.coord.ToggleStar(context.Background(), "b3")
	if err != nil {
		t.Fatalf("ToggleStar() error = %v", err)
	}
	if !b.IsStarred {
		t.Error("star not set")
	}

	b, err = f.coord.ToggleStar(context.Background(), "b3")
	if err != nil {
		t.Fatalf("ToggleStar() error = %v", err)
	}
	if b.IsStarred {
		t.Error("star not cleared on second toggle")
	}
}

func TestDeleteBookmarkOnDashboardUnstars(t *testing.T) {
	var prompt ConfirmRequest
	f := signedIn(t, ConfirmFunc(func(ctx context.Context, req ConfirmRequest) (bool, error) {
		prompt = req
		return true, nil
	}))

	// b2 appears on the Dashboard only because it is starred; its owner
	// is Work.
	if err := f.coord.DeleteBookmark(context.Background(), "b2"); err != nil {
		t.Fatalf("DeleteBookmark() error = %v", err)
	}

	if prompt.Dangerous {
		t.Error("dashboard removal must not be framed as dangerous")
	}
	b, ok := f.store.Bookmark("b2")
	if !ok {
		t.Fatal("bookmark must survive in its owning category")
	}
	if b.IsStarred {
		t.Error("bookmark should be unstarred, not deleted")
	}
	for _, call := range f.backend.calls {
		if call == "DeleteBookmark" {
			t.Error("dashboard removal issued a true delete")
		}
	}
}

func TestDeleteUnstarredBookmarkOnDashboardIsTrueDelete(t *testing.T) {
	var prompt ConfirmRequest
	f := signedIn(t, ConfirmFunc(func(ctx context.Context, req ConfirmRequest) (bool, error) {
		prompt = req
		return true, nil
	}))

	// b3 is owned by Work and not starred, so it is not on the Dashboard
	// at all: there is no star to drop, removing it is a real delete.
	if err := f.coord.DeleteBookmark(context.Background(), "b3"); err != nil {
		t.Fatalf("DeleteBookmark() error = %v", err)
	}

	if !prompt.Dangerous {
		t.Error("deleting an unstarred bookmark must be framed as dangerous")
	}
	if _, ok := f.store.Bookmark("b3"); ok {
		t.Error("unstarred bookmark survived the delete")
	}
	deleted := false
	for _, call := range f.backend.calls {
		if call == "DeleteBookmark" {
			deleted = true
		}
	}
	if !deleted {
		t.Error("delete never reached the backend")
	}
}

func TestDeleteBookmarkInBucketIsTrueDelete(t *testing.T) {
	var prompt ConfirmRequest
	f := signedIn(t, ConfirmFunc(func(ctx context.Context, req ConfirmRequest) (bool, error) {
		prompt = req
		return true, nil
	}))

	// b1 lives in the dashboard bucket itself: deleting it from the
	// Dashboard view is a real delete.
	if err := f.coord.DeleteBookmark(context.Background(), "b1"); err != nil {
		t.Fatalf("DeleteBookmark() error = %v", err)
	}

	if !prompt.Dangerous {
		t.Error("true delete must be framed as dangerous")
	}
	if _, ok := f.store.Bookmark("b1"); ok {
		t.Error("bucket-native bookmark should be gone")
	}
}

func TestDeleteBookmarkInCategoryView(t *testing.T) {
	f := signedIn(t, ConfirmFunc(acceptAll))
	if err := f.coord.SelectView("work"); err != nil {
		t.Fatalf("SelectView: %v", err)
	}

	if err := f.coord.DeleteBookmark(context.Background(), "b2"); err != nil {
		t.Fatalf("DeleteBookmark() error = %v", err)
	}
	if _, ok := f.store.Bookmark("b2"); ok {
		t.Error("bookmark should be deleted from a category view even when starred")
	}
}

func TestDeleteBookmarkDeclined(t *testing.T) {
	f := signedIn(t, ConfirmFunc(rejectAll))

	if err := f.coord.DeleteBookmark(context.Background(), "b1"); err != nil {
		t.Fatalf("declined delete should return nil, got %v", err)
	}
	if _, ok := f.store.Bookmark("b1"); !ok {
		t.Error("declined delete removed the bookmark")
	}
}

// ─────────────────────────────────────────────────────────────────
// Reorder
// ─────────────────────────────────────────────────────────────────

func TestReorderPersistsAndRoundTrips(t *testing.T) {
	f := signedIn(t, nil)
	if err := f.coord.SelectView("work"); err != nil {
		t.Fatalf("SelectView: %v", err)
	}

	if err := f.coord.Reorder(context.Background(), 1, 0); err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}

	list := f.store.CategoryBookmarks("work")
	if list[0].ID != "b3" || list[1].ID != "b2" {
		t.Errorf("order after reorder = %v, want b3, b2", list)
	}

	// A follow-up full refresh reproduces the same order from the
	// persisted positions.
	if err := f.coord.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	list = f.store.CategoryBookmarks("work")
	if list[0].ID != "b3" || list[1].ID != "b2" {
		t.Errorf("order lost across refresh = %v, want b3, b2", list)
	}
}

func TestReorderRejectedOnDashboard(t *testing.T) {
	f := signedIn(t, nil)

	err := f.coord.Reorder(context.Background(), 0, 1)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("dashboard reorder: error = %v, want ErrValidation", err)
	}
}

func TestReorderRejectedDuringSearch(t *testing.T) {
	f := signedIn(t, nil)
	if err := f.coord.SelectView("work"); err != nil {
		t.Fatalf("SelectView: %v", err)
	}
	f.coord.SetSearch("wiki")

	err := f.coord.Reorder(context.Background(), 0, 1)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("filtered reorder: error = %v, want ErrValidation", err)
	}
}

func TestReorderOutOfRange(t *testing.T) {
	f := signedIn(t, nil)
	if err := f.coord.SelectView("work"); err != nil {
		t.Fatalf("SelectView: %v", err)
	}

	for _, idx := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
		if err := f.coord.Reorder(context.Background(), idx[0], idx[1]); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Reorder(%d, %d): error = %v, want ErrValidation", idx[0], idx[1], err)
		}
	}
}

func TestReorderSamePositionIsNoOp(t *testing.T) {
	f := signedIn(t, nil)
	if err := f.coord.SelectView("work"); err != nil {
		t.Fatalf("SelectView: %v", err)
	}
	before := f.backend.callCount()

	if err := f.coord.Reorder(context.Background(), 1, 1); err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}
	if f.backend.callCount() != before {
		t.Error("same-position reorder must not reach the backend")
	}
}
