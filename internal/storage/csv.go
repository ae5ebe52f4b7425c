package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mohamedkhairy/stock-analysis/internal/models"
	"github.com/mohamedkhairy/stock-analysis/pkg/logger"
)

// CSVRecordStore serves a price table read from a CSV file. LoadRecords
// re-parses the file whenever its modification time or size has changed
// since the last read.
type CSVRecordStore struct {
	path    string
	mu      sync.RWMutex
	records []models.PriceRecord
	modTime time.Time
	size    int64
}

// NewCSVRecordStore opens and parses the CSV file at path
func NewCSVRecordStore(path string) (*CSVRecordStore, error) {
	s := &CSVRecordStore{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the file and atomically replaces the snapshot
func (s *CSVRecordStore) Reload() error {
	start := time.Now()

	f, err := os.Open(s.path)
	if err != nil {
		loadErrors.WithLabelValues("csv").Inc()
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		loadErrors.WithLabelValues("csv").Inc()
		return fmt.Errorf("failed to stat %s: %w", s.path, err)
	}

	records, err := ParseCSV(f)
	if err != nil {
		loadErrors.WithLabelValues("csv").Inc()
		return fmt.Errorf("failed to parse %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.records = records
	s.modTime = info.ModTime()
	s.size = info.Size()
	s.mu.Unlock()

	loadLatency.WithLabelValues("csv").Observe(time.Since(start).Seconds())
	recordsLoaded.WithLabelValues("csv").Set(float64(len(records)))

	logger.Info("Loaded price records from CSV",
		logger.String("path", s.path),
		logger.Int("records", len(records)),
		logger.Duration("duration", time.Since(start)),
	)
	return nil
}

// LoadRecords returns a copy of the current snapshot, reloading the file
// first when it has changed on disk
func (s *CSVRecordStore) LoadRecords(ctx context.Context) ([]models.PriceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	changed, err := s.changedOnDisk()
	if err != nil {
		loadErrors.WithLabelValues("csv").Inc()
		return nil, err
	}
	if changed {
		if err := s.Reload(); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRecords(s.records), nil
}

func (s *CSVRecordStore) changedOnDisk() (bool, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", s.path, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return !info.ModTime().Equal(s.modTime) || info.Size() != s.size, nil
}

func (s *CSVRecordStore) Close() error {
	return nil
}

// csvColumns maps the recognized header names to their column index
type csvColumns struct {
	date, category, symbol, close int
	open, high, low, volume       int
}

func resolveColumns(header []string) (csvColumns, error) {
	cols := csvColumns{-1, -1, -1, -1, -1, -1, -1, -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "date":
			cols.date = i
		case "category":
			cols.category = i
		case "symbol":
			cols.symbol = i
		case "close":
			cols.close = i
		case "open":
			cols.open = i
		case "high":
			cols.high = i
		case "low":
			cols.low = i
		case "volume":
			cols.volume = i
		}
	}

	var missing []string
	for name, idx := range map[string]int{
		"Date": cols.date, "Category": cols.category, "Symbol": cols.symbol, "Close": cols.close,
	} {
		if idx < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("missing required columns: %s", strings.Join(sortedStrings(missing), ", "))
	}
	return cols, nil
}

// ParseCSV reads a price table with a header row. Date, Category, Symbol and
// Close are required; Open, High, Low and Volume are picked up when present.
// Other columns (such as a leading index column) are ignored.
func ParseCSV(r io.Reader) ([]models.PriceRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: header row is required")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	records := make([]models.PriceRecord, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(row []string, cols csvColumns) (models.PriceRecord, error) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var rec models.PriceRecord
	var err error

	if rec.Date, err = ParseDate(field(cols.date)); err != nil {
		return rec, err
	}
	rec.Category = field(cols.category)
	rec.Symbol = field(cols.symbol)

	if rec.Close, err = strconv.ParseFloat(field(cols.close), 64); err != nil {
		return rec, fmt.Errorf("%w: close %q", models.ErrInvalidPrice, field(cols.close))
	}
	if rec.Open, err = optionalFloat(field(cols.open)); err != nil {
		return rec, fmt.Errorf("%w: open: %v", models.ErrInvalidPrice, err)
	}
	if rec.High, err = optionalFloat(field(cols.high)); err != nil {
		return rec, fmt.Errorf("%w: high: %v", models.ErrInvalidPrice, err)
	}
	if rec.Low, err = optionalFloat(field(cols.low)); err != nil {
		return rec, fmt.Errorf("%w: low: %v", models.ErrInvalidPrice, err)
	}
	volume, err := optionalFloat(field(cols.volume))
	if err != nil {
		return rec, fmt.Errorf("invalid volume: %w", err)
	}
	rec.Volume = int64(math.Round(volume))

	if err := rec.Validate(); err != nil {
		return rec, err
	}
	return rec, nil
}

func optionalFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
