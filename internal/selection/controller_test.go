package selection

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mohamedkhairy/stock-analysis/internal/models"
	"github.com/mohamedkhairy/stock-analysis/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func rec(date, category, symbol string, price float64) models.PriceRecord {
	return models.PriceRecord{Date: day(date), Category: category, Symbol: symbol, Close: price}
}

// fixture is deliberately stored out of date order and interleaved across symbols
func fixture() []models.PriceRecord {
	return []models.PriceRecord{
		rec("2024-01-03", "Technology", "ACME", 121),
		rec("2024-01-02", "Energy", "OILX", 50),
		rec("2024-01-01", "Technology", "ACME", 100),
		rec("2024-01-02", "Technology", "BETA", 10),
		rec("2024-01-02", "Technology", "ACME", 110),
		rec("2024-01-01", "Energy", "OILX", 49),
		rec("2024-01-01", "Banking", "BANK", 30),
	}
}

func newController(records []models.PriceRecord) (*Controller, *storage.MemoryRecordStore) {
	store := storage.NewMemoryRecordStore(records)
	return NewController(store), store
}

func TestController_Categories(t *testing.T) {
	ctrl, _ := newController(fixture())

	categories, err := ctrl.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Banking", "Energy", "Technology"}, categories)
}

func TestController_Categories_EmptyStore(t *testing.T) {
	ctrl, _ := newController(nil)

	categories, err := ctrl.Categories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestController_Symbols(t *testing.T) {
	ctrl, _ := newController(fixture())

	symbols, err := ctrl.Symbols(context.Background(), "Technology")
	require.NoError(t, err)
	assert.Equal(t, []string{"ACME", "BETA"}, symbols)

	symbols, err = ctrl.Symbols(context.Background(), "Energy")
	require.NoError(t, err)
	assert.Equal(t, []string{"OILX"}, symbols)
}

func TestController_Symbols_InvalidCategory(t *testing.T) {
	ctrl, _ := newController(fixture())

	_, err := ctrl.Symbols(context.Background(), "Crypto")
	assert.ErrorIs(t, err, models.ErrInvalidCategory)
}

func TestController_Records_SortedByDate(t *testing.T) {
	ctrl, _ := newController(fixture())

	records, err := ctrl.Records(context.Background(), models.Selection{Category: "Technology", Symbol: "ACME"})
	require.NoError(t, err)
	require.Len(t, records, 3)

	closes := []float64{records[0].Close, records[1].Close, records[2].Close}
	assert.Equal(t, []float64{100, 110, 121}, closes)
	for i := 1; i < len(records); i++ {
		assert.True(t, records[i-1].Date.Before(records[i].Date))
	}
	for _, r := range records {
		assert.Equal(t, "ACME", r.Symbol)
		assert.Equal(t, "Technology", r.Category)
	}
}

func TestController_Records_InvalidSelection(t *testing.T) {
	ctrl, _ := newController(fixture())

	tests := []struct {
		name string
		sel  models.Selection
	}{
		{"symbol from another category", models.Selection{Category: "Energy", Symbol: "ACME"}},
		{"unknown symbol", models.Selection{Category: "Technology", Symbol: "ZZZZ"}},
		{"unknown category", models.Selection{Category: "Crypto", Symbol: "ACME"}},
		{"blank symbol", models.Selection{Category: "Technology"}},
		{"inverted window", models.Selection{Category: "Technology", Symbol: "ACME", From: day("2024-02-01"), To: day("2024-01-01")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ctrl.Records(context.Background(), tt.sel)
			assert.ErrorIs(t, err, models.ErrInvalidSelection)
			assert.Nil(t, records)
		})
	}
}

func TestController_Records_DateWindow(t *testing.T) {
	ctrl, _ := newController(fixture())

	records, err := ctrl.Records(context.Background(), models.Selection{
		Category: "Technology",
		Symbol:   "ACME",
		From:     day("2024-01-02"),
		To:       day("2024-01-03"),
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 110.0, records[0].Close)
	assert.Equal(t, 121.0, records[1].Close)
}

func TestController_Records_EmptyWindowIsNotAnError(t *testing.T) {
	ctrl, _ := newController(fixture())

	records, err := ctrl.Records(context.Background(), models.Selection{
		Category: "Technology",
		Symbol:   "ACME",
		From:     day("2025-01-01"),
	})
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestController_ReflectsDataChanges(t *testing.T) {
	ctrl, store := newController(fixture())
	sel := models.Selection{Category: "Technology", Symbol: "ACME"}

	records, err := ctrl.Records(context.Background(), sel)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	store.Replace(append(fixture(), rec("2024-01-04", "Technology", "ACME", 133.1)))

	records, err = ctrl.Records(context.Background(), sel)
	require.NoError(t, err)
	assert.Len(t, records, 4)
	assert.Equal(t, 133.1, records[3].Close)
}

func TestController_DuplicateDatesKeepStoreOrder(t *testing.T) {
	ctrl, _ := newController([]models.PriceRecord{
		rec("2024-01-02", "Technology", "ACME", 2),
		rec("2024-01-01", "Technology", "ACME", 1),
		rec("2024-01-02", "Technology", "ACME", 3),
	})

	records, err := ctrl.Records(context.Background(), models.Selection{Category: "Technology", Symbol: "ACME"})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []float64{1, 2, 3}, []float64{records[0].Close, records[1].Close, records[2].Close})
}

func TestController_StoreError(t *testing.T) {
	ctrl, store := newController(fixture())
	boom := errors.New("disk unavailable")
	store.SetLoadError(boom)

	_, err := ctrl.Categories(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = ctrl.Symbols(context.Background(), "Technology")
	assert.ErrorIs(t, err, boom)

	_, err = ctrl.Records(context.Background(), models.Selection{Category: "Technology", Symbol: "ACME"})
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, models.ErrInvalidSelection))
}

func TestController_Records_SeesCSVFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stocks.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date,Category,Symbol,Close\n2024-01-01,Technology,ACME,100\n"), 0o644))

	store, err := storage.NewCSVRecordStore(path)
	require.NoError(t, err)
	ctrl := NewController(store)
	sel := models.Selection{Category: "Technology", Symbol: "ACME"}

	before, err := ctrl.Records(context.Background(), sel)
	require.NoError(t, err)
	require.Len(t, before, 1)

	require.NoError(t, os.WriteFile(path, []byte("Date,Category,Symbol,Close\n2024-01-01,Technology,ACME,100\n2024-01-02,Technology,ACME,110\n"), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	after, err := ctrl.Records(context.Background(), sel)
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, 110.0, after[1].Close)
}
