package storage

import (
	"context"
	"sync"

	"github.com/mohamedkhairy/stock-analysis/internal/models"
)

// MemoryRecordStore keeps the record table in memory. It backs tests and
// callers that already hold a parsed dataset.
type MemoryRecordStore struct {
	mu      sync.RWMutex
	records []models.PriceRecord
	loadErr error
	loads   int
}

// NewMemoryRecordStore creates an in-memory store holding a copy of records
func NewMemoryRecordStore(records []models.PriceRecord) *MemoryRecordStore {
	s := &MemoryRecordStore{}
	s.Replace(records)
	return s
}

// LoadRecords returns a copy of the stored records
func (s *MemoryRecordStore) LoadRecords(ctx context.Context) ([]models.PriceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loads++
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return copyRecords(s.records), nil
}

// Replace swaps the whole dataset
func (s *MemoryRecordStore) Replace(records []models.PriceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = copyRecords(records)
}

// SetLoadError makes subsequent loads fail with err (nil clears it)
func (s *MemoryRecordStore) SetLoadError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// Loads returns how many times LoadRecords was called
func (s *MemoryRecordStore) Loads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loads
}

func (s *MemoryRecordStore) Close() error {
	return nil
}

func copyRecords(records []models.PriceRecord) []models.PriceRecord {
	out := make([]models.PriceRecord, len(records))
	copy(out, records)
	return out
}
