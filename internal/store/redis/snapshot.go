package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alltabs/alltabsd/internal/domain"
)

// DefaultSnapshotTTL bounds how long a cached snapshot is served after the
// backend becomes unreachable.
const DefaultSnapshotTTL = 48 * time.Hour

// Cache persists the last-known-good categories and bookmarks so the daemon
// can warm-start before the first remote load and keep serving data across a
// backend outage. Best effort on the write path: the in-memory store remains
// the primary source.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a snapshot cache. A zero ttl falls back to DefaultSnapshotTTL.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// snapshotDoc is the stored wire form: flat listings, order carried by SortOrder.
type snapshotDoc struct {
	Categories []domain.Category `json:"categories"`
	Bookmarks  []domain.Bookmark `json:"bookmarks"`
}

// Save stores the given listings, replacing any previous snapshot.
func (c *Cache) Save(ctx context.Context, cats []domain.Category, bms []domain.Bookmark) error {
	data, err := json.Marshal(snapshotDoc{Categories: cats, Bookmarks: bms})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, KeySnapshot, data, c.ttl)
	pipe.Set(ctx, KeySnapshotAt, time.Now().Format(time.RFC3339), c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load retrieves the stored listings. A missing snapshot returns empty
// slices and no error.
func (c *Cache) Load(ctx context.Context) ([]domain.Category, []domain.Bookmark, error) {
	data, err := c.client.Get(ctx, KeySnapshot).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil, nil // cache miss
		}
		return nil, nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return doc.Categories, doc.Bookmarks, nil
}

// SavedAt returns when the snapshot was last written, zero if never.
func (c *Cache) SavedAt(ctx context.Context) (time.Time, error) {
	v, err := c.client.Get(ctx, KeySnapshotAt).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to get snapshot time: %w", err)
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse snapshot time: %w", err)
	}
	return t, nil
}

// Flush drops the stored snapshot (logout).
func (c *Cache) Flush(ctx context.Context) error {
	if err := c.client.Del(ctx, KeySnapshot, KeySnapshotAt).Err(); err != nil {
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	return nil
}
