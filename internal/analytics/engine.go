// Package analytics turns one symbol's ordered price records into derived
// metric rows and summarises them.
package analytics

import (
	"github.com/mohamedkhairy/stock-analysis/internal/models"
	"github.com/mohamedkhairy/stock-analysis/pkg/indicator"
)

// Trailing window sizes of the rolling metrics
const (
	VolatilityWindow = 20
	ShortSMAWindow   = 50
	LongSMAWindow    = 200
)

// Compute maps records (ascending by date, one symbol) 1:1 onto metric rows.
// Row i only depends on records[0..i]. Rolling fields stay 0 until their
// window is full. Calculators are created per call, so Compute holds no state
// between invocations and identical input yields identical output.
func Compute(records []models.PriceRecord) []models.MetricRow {
	rows := make([]models.MetricRow, 0, len(records))
	if len(records) == 0 {
		return rows
	}

	daily := indicator.NewDailyReturn()
	cumulative := indicator.NewCumulativeReturn()
	volatility := mustStdDev(VolatilityWindow, "volatility_20")
	smaShort := mustSMA(ShortSMAWindow)
	smaLong := mustSMA(LongSMAWindow)

	for _, rec := range records {
		ret := daily.Update(rec.Close)
		rows = append(rows, models.MetricRow{
			Date:             rec.Date,
			Close:            rec.Close,
			DailyReturn:      ret,
			Volatility20:     volatility.Update(rec.Close),
			SMA50:            smaShort.Update(rec.Close),
			SMA200:           smaLong.Update(rec.Close),
			CumulativeReturn: cumulative.Update(ret),
		})
	}

	return rows
}

// WarmedUp reports whether a rolling metric of the given window is
// authoritative at row index. Rows before that hold the 0 placeholder.
func WarmedUp(index, window int) bool {
	return index >= window-1
}

func mustSMA(period int) *indicator.SMA {
	sma, err := indicator.NewSMA(period)
	if err != nil {
		panic(err)
	}
	return sma
}

func mustStdDev(period int, name string) *indicator.StdDev {
	sd, err := indicator.NewStdDev(period, name)
	if err != nil {
		panic(err)
	}
	return sd
}
