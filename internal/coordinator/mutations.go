package coordinator

import (
	"context"
	"fmt"
	"strings"

	"github.com/alltabs/alltabsd/internal/domain"
	"github.com/alltabs/alltabsd/internal/logger"
	"github.com/alltabs/alltabsd/internal/remote"
)

// AddCategory creates a category and selects it as the active view.
func (c *Coordinator) AddCategory(ctx context.Context, name string) (domain.Category, error) {
	if !c.gate.Authenticated() {
		return domain.Category{}, fmt.Errorf("%w: adding a category", domain.ErrAuthRequired)
	}
	if err := domain.ValidateCategoryName(name); err != nil {
		return domain.Category{}, err
	}

	cat, err := c.remote.CreateCategory(ctx, strings.TrimSpace(name))
	if err != nil {
		return domain.Category{}, c.fail("failed to add category", err)
	}

	c.store.UpsertCategory(cat)
	c.setView(cat.ID)
	c.refreshAfterMutation(ctx)
	c.log.Info("category added", logger.String("id", cat.ID))
	return cat, nil
}

// DeleteCategory deletes a category after confirmation. Deleting the last
// remaining category is rejected locally, before any network call. The
// backend cascades to the category's bookmarks; the local cascade here is
// advisory and corrected by the follow-up reload.
func (c *Coordinator) DeleteCategory(ctx context.Context, id string) error {
	if !c.gate.Authenticated() {
		return fmt.Errorf("%w: deleting a category", domain.ErrAuthRequired)
	}
	cat, ok := c.store.Category(id)
	if !ok {
		return fmt.Errorf("%w: category %q", domain.ErrNotFound, id)
	}
	if c.store.CategoryCount() <= 1 {
		return domain.Validationf("cannot delete the last remaining category")
	}

	n := len(c.store.CategoryBookmarks(id))
	ok, err := c.confirm.Confirm(ctx, ConfirmRequest{
		Title:       "Delete Category",
		Message:     fmt.Sprintf("Delete %q and the %d bookmark(s) inside it? This cannot be undone.", cat.Name, n),
		ConfirmText: "Delete",
		Dangerous:   true,
	})
	if err != nil {
		return err
	}
	if !ok {
		c.log.Debug("category delete declined", logger.String("id", id))
		return nil
	}

	if err := c.remote.DeleteCategory(ctx, id); err != nil {
		return c.fail("failed to delete category", err)
	}

	c.store.RemoveCategory(id)
	if c.ActiveView() == id {
		c.setView(domain.DashboardViewID)
	}
	c.refreshAfterMutation(ctx)
	c.log.Info("category deleted", logger.String("id", id))
	return nil
}

// AddBookmark creates a bookmark in the target category, appended at the
// end of its manual order. IsStarred defaults to false.
func (c *Coordinator) AddBookmark(ctx context.Context, in domain.BookmarkInput, categoryID string) (domain.Bookmark, error) {
	if !c.gate.Authenticated() {
		return domain.Bookmark{}, fmt.Errorf("%w: adding a bookmark", domain.ErrAuthRequired)
	}
	if err := domain.ValidateBookmarkInput(in); err != nil {
		return domain.Bookmark{}, err
	}
	if _, ok := c.store.Category(categoryID); !ok {
		return domain.Bookmark{}, domain.Validationf("target category %q does not exist", categoryID)
	}

	b, err := c.remote.CreateBookmark(ctx, in, categoryID, c.store.NextSortOrder(categoryID))
	if err != nil {
		return domain.Bookmark{}, c.fail("failed to add bookmark", err)
	}

	c.store.UpsertBookmark(b)
	c.refreshAfterMutation(ctx)
	c.log.Info("bookmark added",
		logger.String("id", b.ID),
		logger.String("category_id", b.CategoryID))
	return b, nil
}

// EditBookmark updates a bookmark's fields and, when targetCategoryID
// differs from the current owner, moves it. An in-place edit preserves the
// manual position; a move appends at the end of the destination sequence,
// the old slot is lost.
func (c *Coordinator) EditBookmark(ctx context.Context, id string, in domain.BookmarkInput, targetCategoryID string) (domain.Bookmark, error) {
	if !c.gate.Authenticated() {
		return domain.Bookmark{}, fmt.Errorf("%w: editing a bookmark", domain.ErrAuthRequired)
	}
	cur, ok := c.store.Bookmark(id)
	if !ok {
		return domain.Bookmark{}, fmt.Errorf("%w: bookmark %q", domain.ErrNotFound, id)
	}
	if err := domain.ValidateBookmarkInput(in); err != nil {
		return domain.Bookmark{}, err
	}
	if _, ok := c.store.Category(targetCategoryID); !ok {
		return domain.Bookmark{}, domain.Validationf("target category %q does not exist", targetCategoryID)
	}

	patch := remote.BookmarkPatch{
		Label:    &in.Label,
		URL:      &in.URL,
		Username: &in.Username,
		Password: &in.Password,
	}
	if targetCategoryID != cur.CategoryID {
		end := c.store.NextSortOrder(targetCategoryID)
		patch.CategoryID = &targetCategoryID
		patch.SortOrder = &end
	}

	updated, err := c.remote.UpdateBookmark(ctx, id, patch)
	if err != nil {
		return domain.Bookmark{}, c.fail("failed to save bookmark", err)
	}

	c.store.UpsertBookmark(updated)
	c.refreshAfterMutation(ctx)
	c.log.Info("bookmark saved",
		logger.String("id", id),
		logger.Bool("moved", targetCategoryID != cur.CategoryID))
	return updated, nil
}

// ToggleStar flips the starred flag. Ownership is untouched and no
// confirmation is required.
func (c *Coordinator) ToggleStar(ctx context.Context, id string) (domain.Bookmark, error) {
	if !c.gate.Authenticated() {
		return domain.Bookmark{}, fmt.Errorf("%w: starring a bookmark", domain.ErrAuthRequired)
	}
	cur, ok := c.store.Bookmark(id)
	if !ok {
		return domain.Bookmark{}, fmt.Errorf("%w: bookmark %q", domain.ErrNotFound, id)
	}

	starred := !cur.IsStarred
	updated, err := c.remote.UpdateBookmark(ctx, id, remote.BookmarkPatch{IsStarred: &starred})
	if err != nil {
		return domain.Bookmark{}, c.fail("failed to update star", err)
	}

	c.store.UpsertBookmark(updated)
	c.refreshAfterMutation(ctx)
	return updated, nil
}

// DeleteBookmark removes a bookmark after confirmation, with one twist:
// when the active view is the Dashboard and the bookmark only appears
// there because it is starred (its owner is a different category), the
// action is framed as "remove from Dashboard" and its effect is an
// unstar - the record survives in its owning category. Everywhere else it
// is a true, irreversible delete. Selected by comparing the bookmark's
// owning category against the active view.
func (c *Coordinator) DeleteBookmark(ctx context.Context, id string) error {
	if !c.gate.Authenticated() {
		return fmt.Errorf("%w: deleting a bookmark", domain.ErrAuthRequired)
	}
	b, ok := c.store.Bookmark(id)
	if !ok {
		return fmt.Errorf("%w: bookmark %q", domain.ErrNotFound, id)
	}

	snap := c.store.Snapshot()
	view := c.ActiveView()
	unstarOnly := snap.IsDashboardView(view) && b.CategoryID != snap.DashboardID && b.IsStarred

	if unstarOnly {
		owner, _ := snap.Category(b.CategoryID)
		ok, err := c.confirm.Confirm(ctx, ConfirmRequest{
			Title:       "Remove from Dashboard",
			Message:     fmt.Sprintf("Remove %q from the Dashboard? It will still be available in %q.", b.Label, owner.Name),
			ConfirmText: "Remove",
			Dangerous:   false,
		})
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		starred := false
		updated, err := c.remote.UpdateBookmark(ctx, id, remote.BookmarkPatch{IsStarred: &starred})
		if err != nil {
			return c.fail("failed to remove bookmark from dashboard", err)
		}
		c.store.UpsertBookmark(updated)
		c.refreshAfterMutation(ctx)
		c.log.Info("bookmark unstarred via dashboard remove", logger.String("id", id))
		return nil
	}

	ok, err := c.confirm.Confirm(ctx, ConfirmRequest{
		Title:       "Delete Bookmark",
		Message:     fmt.Sprintf("Delete %q? This cannot be undone.", b.Label),
		ConfirmText: "Delete",
		Dangerous:   true,
	})
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := c.remote.DeleteBookmark(ctx, id); err != nil {
		return c.fail("failed to delete bookmark", err)
	}
	c.store.RemoveBookmark(id)
	c.refreshAfterMutation(ctx)
	c.log.Info("bookmark deleted", logger.String("id", id))
	return nil
}

// Reorder splices the active category's manual order, moving the element
// at fromIndex to toIndex, and persists the changed positions. Only
// meaningful against a stable, unfiltered, single-category sequence:
// rejected on the Dashboard view and while a search filter is active.
func (c *Coordinator) Reorder(ctx context.Context, fromIndex, toIndex int) error {
	if !c.gate.Authenticated() {
		return fmt.Errorf("%w: reordering bookmarks", domain.ErrAuthRequired)
	}

	view := c.ActiveView()
	if c.store.Snapshot().IsDashboardView(view) {
		return domain.Validationf("reordering is disabled on the dashboard view")
	}
	if c.SearchQuery() != "" {
		return domain.Validationf("reordering is disabled while a search filter is active")
	}

	list := c.store.CategoryBookmarks(view)
	if fromIndex < 0 || fromIndex >= len(list) || toIndex < 0 || toIndex >= len(list) {
		return domain.Validationf("reorder index out of range")
	}
	if fromIndex == toIndex {
		return nil
	}

	moved := list[fromIndex]
	list = append(list[:fromIndex], list[fromIndex+1:]...)
	list = append(list[:toIndex], append([]domain.Bookmark{moved}, list[toIndex:]...)...)

	// Persist only the positions that actually changed.
	var firstErr error
	for i, b := range list {
		if b.SortOrder == i {
			continue
		}
		pos := i
		if _, err := c.remote.UpdateBookmark(ctx, b.ID, remote.BookmarkPatch{SortOrder: &pos}); err != nil {
			firstErr = c.fail("failed to persist new order", err)
			break
		}
	}

	// Re-fetch either way: a partial reorder must not leave the store and
	// the backend disagreeing.
	c.refreshAfterMutation(ctx)
	if firstErr != nil {
		return firstErr
	}
	c.log.Info("category reordered",
		logger.String("category_id", view),
		logger.Int("from", fromIndex),
		logger.Int("to", toIndex))
	return nil
}
