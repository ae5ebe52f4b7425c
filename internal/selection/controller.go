// Package selection resolves a (category, symbol) choice against the record
// store and narrows it to one symbol's date-ordered price records.
package selection

import (
	"context"
	"fmt"
	"sort"

	"github.com/mohamedkhairy/stock-analysis/internal/models"
	"github.com/mohamedkhairy/stock-analysis/internal/storage"
	"github.com/mohamedkhairy/stock-analysis/pkg/logger"
)

// Controller is a read-only filter view over a RecordStore. Every call reads
// the store afresh, so a change in the underlying data is fully reflected by
// the next call.
type Controller struct {
	store storage.RecordStore
}

// NewController creates a controller over store
func NewController(store storage.RecordStore) *Controller {
	return &Controller{store: store}
}

// Categories returns the distinct categories present in the store, sorted
func (c *Controller) Categories(ctx context.Context) ([]string, error) {
	records, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, rec := range records {
		seen[rec.Category] = struct{}{}
	}
	return sortedKeys(seen), nil
}

// Symbols returns the distinct symbols observed under category, sorted.
// Categories are derived from the data, so ErrInvalidCategory only surfaces
// for a category that was never listed by Categories (or vanished since).
func (c *Controller) Symbols(ctx context.Context, category string) ([]string, error) {
	records, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	symbols := symbolsIn(records, category)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: %q has no records", models.ErrInvalidCategory, category)
	}
	return sortedKeys(symbols), nil
}

// Records returns the selected symbol's records sorted ascending by date and
// narrowed to the selection's date window. A symbol that is not observed
// under the category yields ErrInvalidSelection. A valid pair whose window
// matches nothing yields an empty slice and no error.
func (c *Controller) Records(ctx context.Context, sel models.Selection) ([]models.PriceRecord, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	records, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := symbolsIn(records, sel.Category)[sel.Symbol]; !ok {
		return nil, fmt.Errorf("%w: symbol %q does not belong to category %q",
			models.ErrInvalidSelection, sel.Symbol, sel.Category)
	}

	matched := make([]models.PriceRecord, 0)
	for _, rec := range records {
		if rec.Category == sel.Category && rec.Symbol == sel.Symbol {
			matched = append(matched, rec)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})
	warnOnDuplicateDates(sel, matched)

	out := matched[:0]
	for _, rec := range matched {
		if sel.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (c *Controller) load(ctx context.Context) ([]models.PriceRecord, error) {
	records, err := c.store.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load price records: %w", err)
	}
	return records, nil
}

func symbolsIn(records []models.PriceRecord, category string) map[string]struct{} {
	symbols := make(map[string]struct{})
	for _, rec := range records {
		if rec.Category == category {
			symbols[rec.Symbol] = struct{}{}
		}
	}
	return symbols
}

// warnOnDuplicateDates flags an upstream violation of one record per date.
// The stable sort keeps the store's order for the duplicates.
func warnOnDuplicateDates(sel models.Selection, sorted []models.PriceRecord) {
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Date.Equal(sorted[i-1].Date) {
			logger.Warn("Duplicate price record date",
				logger.String("category", sel.Category),
				logger.String("symbol", sel.Symbol),
				logger.Time("date", sorted[i].Date),
			)
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
