// Package pipeline wires one selection through the record filter, the
// metrics engine and the summary into a report for the presentation layer.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mohamedkhairy/stock-analysis/internal/analytics"
	"github.com/mohamedkhairy/stock-analysis/internal/models"
	"github.com/mohamedkhairy/stock-analysis/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	computeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analytics_compute_duration_seconds",
			Help:    "Time to resolve a selection and compute its metrics",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	rowsComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analytics_rows_computed_total",
			Help: "Total number of metric rows computed",
		},
	)

	selectionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_selection_errors_total",
			Help: "Selections that could not be resolved, by reason",
		},
		[]string{"reason"}, // "invalid_selection" or "store"
	)
)

// Selector narrows the record store to one selection's ordered records
type Selector interface {
	Records(ctx context.Context, sel models.Selection) ([]models.PriceRecord, error)
}

// Report is everything the presentation layer needs for one selection
type Report struct {
	Category    string             `json:"category"`
	Symbol      string             `json:"symbol"`
	From        *time.Time         `json:"from,omitempty"`
	To          *time.Time         `json:"to,omitempty"`
	Rows        []models.MetricRow `json:"rows"`
	Summary     models.Summary     `json:"summary"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// Pipeline runs a full, synchronous recomputation per selection
type Pipeline struct {
	selector Selector
	now      func() time.Time
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithClock overrides the clock used for Report.GeneratedAt
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// New creates a pipeline reading through selector
func New(selector Selector, opts ...Option) *Pipeline {
	p := &Pipeline{
		selector: selector,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run resolves sel and recomputes its metrics from scratch. Nothing is kept
// between runs; a new selection simply replaces the previous report.
func (p *Pipeline) Run(ctx context.Context, sel models.Selection) (*Report, error) {
	start := time.Now()
	log := logger.WithContext(ctx)

	records, err := p.selector.Records(ctx, sel)
	if err != nil {
		reason := "store"
		if errors.Is(err, models.ErrInvalidSelection) {
			reason = "invalid_selection"
		}
		selectionErrors.WithLabelValues(reason).Inc()
		return nil, fmt.Errorf("failed to resolve selection %s/%s: %w", sel.Category, sel.Symbol, err)
	}

	rows := analytics.Compute(records)
	report := &Report{
		Category:    sel.Category,
		Symbol:      sel.Symbol,
		From:        optionalDate(sel.From),
		To:          optionalDate(sel.To),
		Rows:        rows,
		Summary:     analytics.Describe(rows),
		GeneratedAt: p.now(),
	}

	elapsed := time.Since(start)
	computeDuration.Observe(elapsed.Seconds())
	rowsComputed.Add(float64(len(rows)))

	fields := []zap.Field{
		logger.String("category", sel.Category),
		logger.String("symbol", sel.Symbol),
		logger.Int("rows", len(rows)),
		logger.Duration("duration", elapsed),
	}
	if len(rows) > 0 {
		fields = append(fields, logger.Float64("cumulative_return", rows[len(rows)-1].CumulativeReturn))
	}
	log.Debug("Computed metrics", fields...)

	return report, nil
}

func optionalDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
