package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mohamedkhairy/stock-analysis/internal/models"
	"github.com/mohamedkhairy/stock-analysis/pkg/logger"
)

// CachedRecordStore serves the record table from a snapshot cache and falls
// back to the source store on a miss. Only raw price records are cached;
// derived metrics are always recomputed. Cache failures degrade to reading
// the source and never fail a load.
type CachedRecordStore struct {
	source RecordStore
	cache  SnapshotCache
	key    string
	ttl    time.Duration
}

// NewCachedRecordStore wraps source with cache under key for ttl
func NewCachedRecordStore(source RecordStore, cache SnapshotCache, key string, ttl time.Duration) *CachedRecordStore {
	return &CachedRecordStore{
		source: source,
		cache:  cache,
		key:    key,
		ttl:    ttl,
	}
}

// LoadRecords returns the cached snapshot or loads and caches the source table
func (c *CachedRecordStore) LoadRecords(ctx context.Context) ([]models.PriceRecord, error) {
	data, err := c.cache.Get(ctx, c.key)
	switch {
	case err == nil:
		var records []models.PriceRecord
		uerr := json.Unmarshal(data, &records)
		if uerr == nil {
			cacheRequests.WithLabelValues("hit").Inc()
			return records, nil
		}
		cacheRequests.WithLabelValues("error").Inc()
		logger.Warn("Discarding unreadable record snapshot",
			logger.String("key", c.key),
			logger.ErrorField(uerr),
		)
	case errors.Is(err, ErrCacheMiss):
		cacheRequests.WithLabelValues("miss").Inc()
	default:
		cacheRequests.WithLabelValues("error").Inc()
		logger.Warn("Record snapshot cache unavailable, reading source",
			logger.String("key", c.key),
			logger.ErrorField(err),
		)
	}

	records, err := c.source.LoadRecords(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record snapshot: %w", err)
	}
	if err := c.cache.Set(ctx, c.key, payload, c.ttl); err != nil {
		logger.Warn("Failed to store record snapshot",
			logger.String("key", c.key),
			logger.ErrorField(err),
		)
	}

	return records, nil
}

// Close closes both the cache and the source store
func (c *CachedRecordStore) Close() error {
	return errors.Join(c.cache.Close(), c.source.Close())
}
