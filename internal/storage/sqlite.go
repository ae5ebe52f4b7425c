package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mohamedkhairy/stock-analysis/pkg/logger"
	_ "modernc.org/sqlite"
)

// SQLiteRecordStore reads price records from a local SQLite database file
type SQLiteRecordStore struct {
	sqlRecordStore
}

// NewSQLiteRecordStore opens the SQLite database at path. The database is
// opened read-only; the price table is maintained by the ingestion side.
func NewSQLiteRecordStore(path string, table string) (*SQLiteRecordStore, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database %s: %w", path, err)
	}

	logger.Info("Opened SQLite price database",
		logger.String("path", path),
		logger.String("table", table),
	)

	return &SQLiteRecordStore{sqlRecordStore{db: db, table: table, source: "sqlite"}}, nil
}
