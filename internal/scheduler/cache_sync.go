package scheduler

import (
	"context"

	"github.com/alltabs/alltabsd/internal/logger"
	"github.com/alltabs/alltabsd/internal/store"
	redisstore "github.com/alltabs/alltabsd/internal/store/redis"
)

// CacheSyncer warm-starts the store from the redis snapshot on boot, so
// the UI has last-known-good data before the first remote load lands.
type CacheSyncer struct {
	cache  *redisstore.Cache
	store  *store.Store
	logger logger.Logger
}

// NewCacheSyncer creates a cache syncer.
func NewCacheSyncer(cache *redisstore.Cache, st *store.Store, log logger.Logger) *CacheSyncer {
	return &CacheSyncer{
		cache:  cache,
		store:  st,
		logger: log,
	}
}

// Sync loads the cached snapshot into the store. A missing snapshot is not
// an error; the store simply stays empty until the first refresh.
func (cs *CacheSyncer) Sync(ctx context.Context) error {
	cs.logger.Info("warm-starting store from snapshot cache")

	cats, bms, err := cs.cache.Load(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		cs.logger.Info("no snapshot in cache")
		return nil
	}

	cs.store.ReplaceAll(cats, bms)

	cs.logger.Info("store warm-started from cache",
		logger.Int("categories", len(cats)),
		logger.Int("bookmarks", len(bms)))
	return nil
}
