package storage

import (
	"fmt"

	"github.com/mohamedkhairy/stock-analysis/internal/config"
)

// Open builds the record store selected by cfg.Data.Source, wrapped in the
// Redis snapshot cache when caching is enabled
func Open(cfg *config.Config) (RecordStore, error) {
	var (
		store RecordStore
		err   error
	)

	switch cfg.Data.Source {
	case config.SourceCSV:
		store, err = NewCSVRecordStore(cfg.Data.CSVPath)
	case config.SourcePostgres:
		store, err = NewPostgresRecordStore(cfg.Database, cfg.Data.Table)
	case config.SourceSQLite:
		store, err = NewSQLiteRecordStore(cfg.Data.SQLitePath, cfg.Data.Table)
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s record store: %w", cfg.Data.Source, err)
	}

	if !cfg.Data.CacheEnabled {
		return store, nil
	}

	cache, err := NewRedisSnapshotCache(cfg.Redis)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to open record cache: %w", err)
	}
	return NewCachedRecordStore(store, cache, cfg.Data.CacheKey, cfg.Data.CacheTTL), nil
}
