// Package presentation turns a pipeline report into chart specifications and
// tabular output. It never computes metrics of its own.
package presentation

import (
	"fmt"
	"time"

	"github.com/mohamedkhairy/stock-analysis/internal/models"
)

// Series colors
const (
	ColorBlue   = "blue"
	ColorGreen  = "green"
	ColorRed    = "red"
	ColorOrange = "orange"
	ColorPurple = "purple"
	ColorCyan   = "cyan"
)

// Point is one (date, value) sample of a series
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is one line on a chart
type Series struct {
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// Chart describes a single line chart over time
type Chart struct {
	Title  string   `json:"title"`
	XLabel string   `json:"x_label"`
	YLabel string   `json:"y_label"`
	Series []Series `json:"series"`
}

// Charts builds the five standard charts for a symbol's metric rows:
// closing price, daily return, volatility, SMA 50 against SMA 200, and
// cumulative return. Points follow row order.
func Charts(symbol string, rows []models.MetricRow) []Chart {
	return []Chart{
		{
			Title:  fmt.Sprintf("%s Closing Price Over Time", symbol),
			XLabel: "Date",
			YLabel: "Close Price",
			Series: []Series{
				series("Close Price", ColorBlue, rows, func(r models.MetricRow) float64 { return r.Close }),
			},
		},
		{
			Title:  fmt.Sprintf("%s Daily Return Over Time", symbol),
			XLabel: "Date",
			YLabel: "Daily Return",
			Series: []Series{
				series("Daily Return", ColorGreen, rows, func(r models.MetricRow) float64 { return r.DailyReturn }),
			},
		},
		{
			Title:  fmt.Sprintf("%s Volatility Over Time", symbol),
			XLabel: "Date",
			YLabel: "Volatility",
			Series: []Series{
				series("Volatility", ColorRed, rows, func(r models.MetricRow) float64 { return r.Volatility20 }),
			},
		},
		{
			Title:  fmt.Sprintf("%s SMA 50 vs SMA 200", symbol),
			XLabel: "Date",
			YLabel: "SMA Value",
			Series: []Series{
				series("SMA 50", ColorOrange, rows, func(r models.MetricRow) float64 { return r.SMA50 }),
				series("SMA 200", ColorPurple, rows, func(r models.MetricRow) float64 { return r.SMA200 }),
			},
		},
		{
			Title:  fmt.Sprintf("%s Cumulative Returns Over Time", symbol),
			XLabel: "Date",
			YLabel: "Cumulative Returns",
			Series: []Series{
				series("Cumulative Returns", ColorCyan, rows, func(r models.MetricRow) float64 { return r.CumulativeReturn }),
			},
		},
	}
}

func series(label, color string, rows []models.MetricRow, value func(models.MetricRow) float64) Series {
	points := make([]Point, len(rows))
	for i, r := range rows {
		points[i] = Point{Date: r.Date, Value: value(r)}
	}
	return Series{Label: label, Color: color, Points: points}
}
