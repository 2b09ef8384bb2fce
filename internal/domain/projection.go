package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// labelCollator compares labels case-insensitively with locale-aware rules.
// Loose also ignores diacritics and width, which matches how users read labels.
var labelCollator = collate.New(language.Und, collate.Loose)

// Project derives the ordered, filtered sequence of bookmarks for a view.
//
// It is a pure function over a Snapshot: recomputed fully on every store
// mutation, view change or search text change, never cached.
//
// Dashboard view: union of the backend dashboard bucket's own bookmarks and
// all starred bookmarks from other categories, bucket-native items first,
// collated label order within each tier.
//
// Specific category view: the category's manual order, untouched. An active
// search filter only narrows the sequence, it never re-sorts it.
func Project(s Snapshot, viewID, query string) []ViewItem {
	var items []ViewItem

	if s.IsDashboardView(viewID) {
		items = dashboardItems(s)
	} else {
		for _, b := range s.Bookmarks[viewID] {
			items = append(items, ViewItem{Bookmark: b, OwnerID: viewID})
		}
	}

	items = filterItems(items, query)

	if s.IsDashboardView(viewID) {
		sortDashboard(items, s.DashboardID)
	}

	return items
}

// dashboardItems builds the unsorted aggregate union. Iteration follows
// backend category order so the later stable sort breaks ties predictably.
func dashboardItems(s Snapshot) []ViewItem {
	var items []ViewItem

	if s.DashboardID != "" {
		for _, b := range s.Bookmarks[s.DashboardID] {
			items = append(items, ViewItem{Bookmark: b, OwnerID: s.DashboardID})
		}
	}

	for _, c := range s.Categories {
		if c.ID == s.DashboardID {
			continue
		}
		for _, b := range s.Bookmarks[c.ID] {
			if b.IsStarred {
				items = append(items, ViewItem{Bookmark: b, OwnerID: c.ID})
			}
		}
	}

	return items
}

func filterItems(items []ViewItem, query string) []ViewItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}

	q := strings.ToLower(query)
	filtered := make([]ViewItem, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Label), q) ||
			strings.Contains(strings.ToLower(it.URL), q) {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

// sortDashboard orders bucket-native items before plain starred items,
// then by collated label within each tier. Stable, so equal labels keep
// their category order.
func sortDashboard(items []ViewItem, dashboardID string) {
	tier := func(it ViewItem) int {
		if dashboardID != "" && it.OwnerID == dashboardID {
			return 0
		}
		return 1
	}

	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := tier(items[i]), tier(items[j])
		if ti != tj {
			return ti < tj
		}
		return labelCollator.CompareString(items[i].Label, items[j].Label) < 0
	})
}
