package models

import (
	"fmt"
	"math"
	"time"
)

// PriceRecord represents one daily price row of a symbol within a category
type PriceRecord struct {
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	Symbol   string    `json:"symbol"`
	Open     float64   `json:"open,omitempty"`
	High     float64   `json:"high,omitempty"`
	Low      float64   `json:"low,omitempty"`
	Close    float64   `json:"close"`
	Volume   int64     `json:"volume,omitempty"`
}

// Validate validates a PriceRecord
func (r *PriceRecord) Validate() error {
	if r.Symbol == "" {
		return ErrInvalidSymbol
	}
	if r.Category == "" {
		return ErrInvalidCategory
	}
	if r.Date.IsZero() {
		return ErrInvalidTimestamp
	}
	if math.IsNaN(r.Close) || math.IsInf(r.Close, 0) {
		return ErrInvalidPrice
	}
	return nil
}

// MetricRow is the derived analytics row for one PriceRecord.
// Rolling fields are 0 until their window is full; use the row index to tell
// "not yet computable" apart from a computed zero.
type MetricRow struct {
	Date             time.Time `json:"date"`
	Close            float64   `json:"close"`
	DailyReturn      float64   `json:"daily_return"`
	Volatility20     float64   `json:"volatility_20"`
	SMA50            float64   `json:"sma_50"`
	SMA200           float64   `json:"sma_200"`
	CumulativeReturn float64   `json:"cumulative_return"`
}

// Selection is the user's current (category, symbol) choice with an optional
// inclusive date window. Zero From/To means unbounded.
type Selection struct {
	Category string    `json:"category"`
	Symbol   string    `json:"symbol"`
	From     time.Time `json:"from,omitempty"`
	To       time.Time `json:"to,omitempty"`
}

// Validate validates a Selection
func (s Selection) Validate() error {
	if s.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidSelection)
	}
	if s.Symbol == "" {
		return fmt.Errorf("%w: symbol is required", ErrInvalidSelection)
	}
	if !s.From.IsZero() && !s.To.IsZero() && s.From.After(s.To) {
		return fmt.Errorf("%w: from %s is after to %s", ErrInvalidSelection,
			s.From.Format(DateLayout), s.To.Format(DateLayout))
	}
	return nil
}

// Contains reports whether date falls inside the selection window
func (s Selection) Contains(date time.Time) bool {
	if !s.From.IsZero() && date.Before(s.From) {
		return false
	}
	if !s.To.IsZero() && date.After(s.To) {
		return false
	}
	return true
}

// DateLayout is the calendar date format used on every text boundary
const DateLayout = "2006-01-02"

// ColumnStats holds the descriptive statistics of one numeric column
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"25%"`
	Median float64 `json:"50%"`
	Q75    float64 `json:"75%"`
	Max    float64 `json:"max"`
}

// Summary is the descriptive statistics table of a MetricRow sequence
type Summary struct {
	Columns []ColumnStats `json:"columns"`
}

// Column returns the stats for the named column
func (s Summary) Column(name string) (ColumnStats, bool) {
	for _, c := range s.Columns {
		if c.Column == name {
			return c, true
		}
	}
	return ColumnStats{}, false
}
