package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mohamedkhairy/stock-analysis/internal/models"
)

// RecordStore is the read-only view over the price record table.
// Implementations return a fresh copy on every call, so callers may sort or
// filter the result without affecting the store.
type RecordStore interface {
	// LoadRecords returns every price record currently in the store
	LoadRecords(ctx context.Context) ([]models.PriceRecord, error)

	// Close releases the underlying resources
	Close() error
}

// SnapshotCache stores serialized record snapshots by key
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Close() error
}

// ErrCacheMiss is returned by SnapshotCache.Get when the key is absent
var ErrCacheMiss = errors.New("cache miss")
