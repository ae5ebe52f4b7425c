package analytics

import (
	"testing"

	"github.com/mohamedkhairy/stock-analysis/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_ColumnsInOrder(t *testing.T) {
	summary := Describe(Compute(makeRecords("ACME", 1, 2, 3)))

	names := make([]string, 0, len(summary.Columns))
	for _, c := range summary.Columns {
		names = append(names, c.Column)
	}
	assert.Equal(t, []string{
		ColumnClose, ColumnDailyReturn, ColumnVolatility,
		ColumnSMA50, ColumnSMA200, ColumnCumulativeReturn,
	}, names)
}

func TestDescribe_Statistics(t *testing.T) {
	rows := []models.MetricRow{{Close: 4}, {Close: 1}, {Close: 3}, {Close: 2}}
	closeStats, ok := Describe(rows).Column(ColumnClose)
	require.True(t, ok)

	assert.Equal(t, 4, closeStats.Count)
	assert.InDelta(t, 2.5, closeStats.Mean, tolerance)
	assert.InDelta(t, 1.2909944487358056, closeStats.Std, tolerance)
	assert.Equal(t, 1.0, closeStats.Min)
	assert.InDelta(t, 1.75, closeStats.Q25, tolerance)
	assert.InDelta(t, 2.5, closeStats.Median, tolerance)
	assert.InDelta(t, 3.25, closeStats.Q75, tolerance)
	assert.Equal(t, 4.0, closeStats.Max)
}

func TestDescribe_OddCountQuartiles(t *testing.T) {
	rows := []models.MetricRow{{Close: 10}, {Close: 20}, {Close: 30}, {Close: 40}, {Close: 50}}
	closeStats, _ := Describe(rows).Column(ColumnClose)

	assert.Equal(t, 20.0, closeStats.Q25)
	assert.Equal(t, 30.0, closeStats.Median)
	assert.Equal(t, 40.0, closeStats.Q75)
}

func TestDescribe_ACME(t *testing.T) {
	summary := Describe(Compute(makeRecords("ACME", 100, 110, 121)))

	ret, _ := summary.Column(ColumnDailyReturn)
	assert.Equal(t, 3, ret.Count)
	assert.InDelta(t, 0.2/3, ret.Mean, tolerance)
	assert.Equal(t, 0.0, ret.Min)
	assert.InDelta(t, 0.10, ret.Max, tolerance)

	vol, _ := summary.Column(ColumnVolatility)
	assert.Equal(t, models.ColumnStats{Column: ColumnVolatility, Count: 3}, vol)
}

func TestDescribe_Empty(t *testing.T) {
	summary := Describe(nil)

	require.Len(t, summary.Columns, 6)
	for _, c := range summary.Columns {
		assert.Equal(t, 0, c.Count, c.Column)
		assert.Zero(t, c.Mean)
		assert.Zero(t, c.Std)
	}
}

func TestDescribe_SingleRow(t *testing.T) {
	closeStats, _ := Describe([]models.MetricRow{{Close: 7}}).Column(ColumnClose)

	assert.Equal(t, 1, closeStats.Count)
	assert.Equal(t, 7.0, closeStats.Mean)
	assert.Equal(t, 0.0, closeStats.Std)
	assert.Equal(t, 7.0, closeStats.Q25)
	assert.Equal(t, 7.0, closeStats.Q75)
}
