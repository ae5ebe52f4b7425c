package analytics

import (
	"math"
	"sort"

	"github.com/mohamedkhairy/stock-analysis/internal/models"
)

// Column names of the descriptive statistics table, in display order
const (
	ColumnClose            = "close"
	ColumnDailyReturn      = "daily_return"
	ColumnVolatility       = "volatility_20"
	ColumnSMA50            = "sma_50"
	ColumnSMA200           = "sma_200"
	ColumnCumulativeReturn = "cumulative_return"
)

var summaryColumns = []struct {
	name    string
	extract func(models.MetricRow) float64
}{
	{ColumnClose, func(r models.MetricRow) float64 { return r.Close }},
	{ColumnDailyReturn, func(r models.MetricRow) float64 { return r.DailyReturn }},
	{ColumnVolatility, func(r models.MetricRow) float64 { return r.Volatility20 }},
	{ColumnSMA50, func(r models.MetricRow) float64 { return r.SMA50 }},
	{ColumnSMA200, func(r models.MetricRow) float64 { return r.SMA200 }},
	{ColumnCumulativeReturn, func(r models.MetricRow) float64 { return r.CumulativeReturn }},
}

// Describe reduces rows to count, mean, sample std, min, quartiles and max per
// numeric column. Empty input gives zero stats with count 0; std needs at
// least two values and is 0 otherwise.
func Describe(rows []models.MetricRow) models.Summary {
	summary := models.Summary{Columns: make([]models.ColumnStats, 0, len(summaryColumns))}

	values := make([]float64, len(rows))
	for _, col := range summaryColumns {
		for i, r := range rows {
			values[i] = col.extract(r)
		}
		stats := describeColumn(values)
		stats.Column = col.name
		summary.Columns = append(summary.Columns, stats)
	}

	return summary
}

func describeColumn(values []float64) models.ColumnStats {
	n := len(values)
	if n == 0 {
		return models.ColumnStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(n)

	std := 0.0
	if n > 1 {
		var sumSq float64
		for _, v := range values {
			d := v - m
			sumSq += d * d
		}
		std = math.Sqrt(sumSq / float64(n-1))
	}

	return models.ColumnStats{
		Count:  n,
		Mean:   m,
		Std:    std,
		Min:    sorted[0],
		Q25:    quantile(sorted, 0.25),
		Median: quantile(sorted, 0.50),
		Q75:    quantile(sorted, 0.75),
		Max:    sorted[n-1],
	}
}

// quantile uses linear interpolation between closest ranks on sorted input
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
