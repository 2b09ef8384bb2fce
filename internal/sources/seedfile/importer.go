package seedfile

import (
	"context"
	"strings"

	"github.com/alltabs/alltabsd/internal/domain"
	"github.com/alltabs/alltabsd/internal/logger"
)

// Applier is the slice of the mutation coordinator the importer drives.
// Going through it means seeded data takes the same validation,
// reconciliation and reload path as user input.
type Applier interface {
	Snapshot() domain.Snapshot
	AddCategory(ctx context.Context, name string) (domain.Category, error)
	AddBookmark(ctx context.Context, in domain.BookmarkInput, categoryID string) (domain.Bookmark, error)
	ToggleStar(ctx context.Context, id string) (domain.Bookmark, error)
}

// Importer pushes a seed file's categories and bookmarks to the backend.
// Idempotent per run: categories are matched by name and bookmarks by URL
// within their category, so re-running against an already seeded account
// creates nothing new.
type Importer struct {
	loader  *Loader
	applier Applier
	logger  logger.Logger
}

// NewImporter creates a seed importer.
func NewImporter(seedFile string, applier Applier, log logger.Logger) *Importer {
	return &Importer{
		loader:  NewLoader(seedFile),
		applier: applier,
		logger:  log,
	}
}

// Run imports the seed file. Requires a signed-in session; individual
// bookmark failures are logged and skipped, a category failure aborts.
func (im *Importer) Run(ctx context.Context) error {
	config, err := im.loader.Load()
	if err != nil {
		return err
	}

	created := 0
	for _, sc := range config.Categories {
		if strings.TrimSpace(sc.Name) == "" {
			continue
		}

		catID, err := im.ensureCategory(ctx, sc.Name)
		if err != nil {
			return err
		}

		existing := urlSet(im.applier.Snapshot().Bookmarks[catID])
		for _, sb := range sc.Bookmarks {
			if sb.URL == "" || existing[strings.ToLower(sb.URL)] {
				continue
			}

			b, err := im.applier.AddBookmark(ctx, domain.BookmarkInput{
				Label:    sb.Label,
				URL:      sb.URL,
				Username: sb.Username,
				Password: sb.Password,
			}, catID)
			if err != nil {
				im.logger.Warn("failed to seed bookmark, skipping",
					logger.String("label", sb.Label),
					logger.Error(err))
				continue
			}
			if sb.Starred {
				if _, err := im.applier.ToggleStar(ctx, b.ID); err != nil {
					im.logger.Warn("failed to star seeded bookmark",
						logger.String("id", b.ID),
						logger.Error(err))
				}
			}
			existing[strings.ToLower(sb.URL)] = true
			created++
		}
	}

	im.logger.Info("seed import finished", logger.Int("bookmarks_created", created))
	return nil
}

// ensureCategory returns the id of the category named name, creating it
// when absent. Matching is case-insensitive.
func (im *Importer) ensureCategory(ctx context.Context, name string) (string, error) {
	for _, c := range im.applier.Snapshot().Categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c.ID, nil
		}
	}
	cat, err := im.applier.AddCategory(ctx, name)
	if err != nil {
		return "", err
	}
	return cat.ID, nil
}

func urlSet(bms []domain.Bookmark) map[string]bool {
	set := make(map[string]bool, len(bms))
	for _, b := range bms {
		set[strings.ToLower(b.URL)] = true
	}
	return set
}
