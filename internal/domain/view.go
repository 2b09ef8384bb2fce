package domain

// DashboardViewID is the reserved client-side view identifier for the
// aggregate Dashboard view. It is never a persisted category id.
const DashboardViewID = "dashboard"

// ViewItem is a bookmark flattened into a view. OwnerID always names the
// true owning category, which may differ from the view the item is shown
// in (a starred bookmark surfaced on the Dashboard keeps its real owner).
// The distinction drives move and delete-vs-unstar semantics.
type ViewItem struct {
	Bookmark

	// OwnerID is the owning category id, annotated at projection time.
	// Never stored on the bookmark itself.
	OwnerID string
}

// Snapshot is an immutable copy of the store used for projection.
type Snapshot struct {
	// Categories in backend list order.
	Categories []Category

	// Bookmarks keyed by owning category id, each slice in manual order.
	// Bookmarks whose category is unknown are excluded (orphan-skip).
	Bookmarks map[string][]Bookmark

	// DashboardID is the id of the backend's dashboard bucket category,
	// empty when the backend does not model one.
	DashboardID string
}

// Category returns the category with the given id.
func (s Snapshot) Category(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// IsDashboardView reports whether viewID addresses the aggregate view,
// either via the reserved identifier or the backend bucket's own id.
func (s Snapshot) IsDashboardView(viewID string) bool {
	if viewID == DashboardViewID {
		return true
	}
	return s.DashboardID != "" && viewID == s.DashboardID
}
