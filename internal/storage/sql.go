package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mohamedkhairy/stock-analysis/internal/models"
	"github.com/mohamedkhairy/stock-analysis/pkg/logger"
)

// sqlRecordStore reads the price table through database/sql. The PostgreSQL
// and SQLite stores share it and differ only in how the connection is opened.
type sqlRecordStore struct {
	db     *sql.DB
	table  string
	source string
}

// LoadRecords reads the full price table
func (s *sqlRecordStore) LoadRecords(ctx context.Context) ([]models.PriceRecord, error) {
	start := time.Now()

	// table is validated as a plain identifier by config.Validate
	query := fmt.Sprintf(`
		SELECT date, category, symbol, open, high, low, close, volume
		FROM %s
		ORDER BY category, symbol, date ASC
	`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		loadErrors.WithLabelValues(s.source).Inc()
		return nil, fmt.Errorf("failed to query price records: %w", err)
	}
	defer rows.Close()

	records := make([]models.PriceRecord, 0)
	for rows.Next() {
		var (
			rawDate         interface{}
			rec             models.PriceRecord
			open, high, low sql.NullFloat64
			volume          sql.NullInt64
		)
		if err := rows.Scan(
			&rawDate,
			&rec.Category,
			&rec.Symbol,
			&open,
			&high,
			&low,
			&rec.Close,
			&volume,
		); err != nil {
			loadErrors.WithLabelValues(s.source).Inc()
			return nil, fmt.Errorf("failed to scan price record: %w", err)
		}

		if rec.Date, err = scanDate(rawDate); err != nil {
			loadErrors.WithLabelValues(s.source).Inc()
			return nil, fmt.Errorf("record %s/%s: %w", rec.Category, rec.Symbol, err)
		}
		rec.Open = open.Float64
		rec.High = high.Float64
		rec.Low = low.Float64
		rec.Volume = volume.Int64

		if err := rec.Validate(); err != nil {
			loadErrors.WithLabelValues(s.source).Inc()
			return nil, fmt.Errorf("invalid record %s/%s on %s: %w",
				rec.Category, rec.Symbol, rec.Date.Format(models.DateLayout), err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		loadErrors.WithLabelValues(s.source).Inc()
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	loadLatency.WithLabelValues(s.source).Observe(time.Since(start).Seconds())
	recordsLoaded.WithLabelValues(s.source).Set(float64(len(records)))
	logger.Debug("Loaded price records",
		logger.String("source", s.source),
		logger.String("table", s.table),
		logger.Int("records", len(records)),
		logger.Duration("duration", time.Since(start)),
	)

	return records, nil
}

// Ping checks the database connection
func (s *sqlRecordStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *sqlRecordStore) Close() error {
	return s.db.Close()
}

// scanDate accepts the driver-specific representations of a DATE column
func scanDate(v interface{}) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return calendarDate(d), nil
	case string:
		return ParseDate(d)
	case []byte:
		return ParseDate(string(d))
	case nil:
		return time.Time{}, fmt.Errorf("%w: date is NULL", models.ErrInvalidTimestamp)
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported date type %T", models.ErrInvalidTimestamp, v)
	}
}
