package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alltabs/alltabsd/internal/domain"
)

// dashboardName is the backend category name recognized as the dashboard
// bucket. Matched case-insensitively.
const dashboardName = "dashboard"

// Store holds the authoritative local copy of categories and bookmarks,
// reconciled against the backend. The only shared mutable resource in the
// process: mutated wholesale via ReplaceAll after each refresh, or through
// single-record upserts that mirror a confirmed remote mutation.
type Store struct {
	mu          sync.RWMutex
	categories  map[string]domain.Category
	catOrder    []string // category ids in backend list order
	bookmarks   map[string]domain.Bookmark
	order       map[string][]string // category id -> bookmark ids, manual order
	dashboardID string
	loadedAt    time.Time // zero until the first successful ReplaceAll
}

// New creates an empty store.
func New() *Store {
	return &Store{
		categories: make(map[string]domain.Category),
		bookmarks:  make(map[string]domain.Bookmark),
		order:      make(map[string][]string),
	}
}

// ReplaceAll replaces the whole state with a fresh backend listing.
// Idempotent: calling it twice with the same inputs yields the same state.
// Bookmarks referencing an unknown category are dropped (orphan-skip).
// Within each category, bookmarks are ordered by SortOrder; ties keep
// input order.
func (s *Store) ReplaceAll(cats []domain.Category, bms []domain.Bookmark) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = make(map[string]domain.Category, len(cats))
	s.catOrder = make([]string, 0, len(cats))
	s.bookmarks = make(map[string]domain.Bookmark, len(bms))
	s.order = make(map[string][]string, len(cats))

	for _, c := range cats {
		if _, dup := s.categories[c.ID]; dup {
			continue
		}
		s.categories[c.ID] = c
		s.catOrder = append(s.catOrder, c.ID)
		s.order[c.ID] = nil
	}

	grouped := make(map[string][]domain.Bookmark, len(cats))
	for _, b := range bms {
		if _, ok := s.categories[b.CategoryID]; !ok {
			continue // orphan: excluded from all views until the backend resolves it
		}
		if _, dup := s.bookmarks[b.ID]; dup {
			continue
		}
		s.bookmarks[b.ID] = b
		grouped[b.CategoryID] = append(grouped[b.CategoryID], b)
	}

	for catID, list := range grouped {
		sort.SliceStable(list, func(i, j int) bool { return list[i].SortOrder < list[j].SortOrder })
		ids := make([]string, len(list))
		for i, b := range list {
			ids[i] = b.ID
		}
		s.order[catID] = ids
	}

	s.dashboardID = findDashboard(s.catOrder, s.categories)
	s.loadedAt = time.Now()
}

// Clear empties the store (logout).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = make(map[string]domain.Category)
	s.catOrder = nil
	s.bookmarks = make(map[string]domain.Bookmark)
	s.order = make(map[string][]string)
	s.dashboardID = ""
	s.loadedAt = time.Time{}
}

// UpsertCategory inserts or replaces a category by id.
func (s *Store) UpsertCategory(c domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[c.ID]; !ok {
		s.catOrder = append(s.catOrder, c.ID)
	}
	s.categories[c.ID] = c
	s.dashboardID = findDashboard(s.catOrder, s.categories)
}

// RemoveCategory removes a category and, locally, all bookmarks it owns.
// Advisory: mirrors the backend cascade; the authoritative state comes
// from the next ReplaceAll.
func (s *Store) RemoveCategory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return
	}
	delete(s.categories, id)
	for i, cid := range s.catOrder {
		if cid == id {
			s.catOrder = append(s.catOrder[:i], s.catOrder[i+1:]...)
			break
		}
	}
	for _, bid := range s.order[id] {
		delete(s.bookmarks, bid)
	}
	delete(s.order, id)
	s.dashboardID = findDashboard(s.catOrder, s.categories)
}

// UpsertBookmark inserts or replaces a bookmark by id. A same-category
// replace keeps the manual position; a move drops the old slot and appends
// at the end of the destination. Bookmarks pointing at an unknown category
// are dropped.
func (s *Store) UpsertBookmark(b domain.Bookmark) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[b.CategoryID]; !ok {
		s.removeBookmarkLocked(b.ID)
		return
	}

	prev, existed := s.bookmarks[b.ID]
	s.bookmarks[b.ID] = b

	if existed && prev.CategoryID == b.CategoryID {
		return // in-place field update, position preserved
	}
	if existed {
		s.order[prev.CategoryID] = removeID(s.order[prev.CategoryID], b.ID)
	}
	s.order[b.CategoryID] = append(s.order[b.CategoryID], b.ID)
}

// RemoveBookmark removes a bookmark by id.
func (s *Store) RemoveBookmark(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeBookmarkLocked(id)
}

func (s *Store) removeBookmarkLocked(id string) {
	b, ok := s.bookmarks[id]
	if !ok {
		return
	}
	delete(s.bookmarks, id)
	s.order[b.CategoryID] = removeID(s.order[b.CategoryID], id)
}

// Snapshot returns an immutable copy for projection.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domain.Snapshot{
		Categories:  make([]domain.Category, 0, len(s.catOrder)),
		Bookmarks:   make(map[string][]domain.Bookmark, len(s.catOrder)),
		DashboardID: s.dashboardID,
	}
	for _, cid := range s.catOrder {
		snap.Categories = append(snap.Categories, s.categories[cid])
		ids := s.order[cid]
		list := make([]domain.Bookmark, 0, len(ids))
		for _, bid := range ids {
			list = append(list, s.bookmarks[bid])
		}
		snap.Bookmarks[cid] = list
	}
	return snap
}

// Category retrieves a category by id.
func (s *Store) Category(id string) (domain.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	return c, ok
}

// Bookmark retrieves a bookmark by id.
func (s *Store) Bookmark(id string) (domain.Bookmark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookmarks[id]
	return b, ok
}

// Categories returns all categories in backend list order.
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cats := make([]domain.Category, 0, len(s.catOrder))
	for _, cid := range s.catOrder {
		cats = append(cats, s.categories[cid])
	}
	return cats
}

// CategoryBookmarks returns a category's bookmarks in manual order.
func (s *Store) CategoryBookmarks(id string) []domain.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.order[id]
	list := make([]domain.Bookmark, 0, len(ids))
	for _, bid := range ids {
		list = append(list, s.bookmarks[bid])
	}
	return list
}

// NextSortOrder returns the SortOrder that appends a bookmark at the end
// of a category's manual sequence: one past the highest value held, not
// the list length. Deletes leave gaps behind, so the two can differ.
func (s *Store) NextSortOrder(categoryID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	next := 0
	for _, bid := range s.order[categoryID] {
		if so := s.bookmarks[bid].SortOrder; so >= next {
			next = so + 1
		}
	}
	return next
}

// CategoryCount returns the number of categories.
func (s *Store) CategoryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.categories)
}

// BookmarkCount returns the number of bookmarks.
func (s *Store) BookmarkCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookmarks)
}

// DashboardID returns the backend dashboard bucket id, "" if none.
func (s *Store) DashboardID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dashboardID
}

// LoadedAt returns the time of the last successful ReplaceAll.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func findDashboard(order []string, cats map[string]domain.Category) string {
	for _, cid := range order {
		if strings.EqualFold(cats[cid].Name, dashboardName) {
			return cid
		}
	}
	return ""
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
