package indicator

import "fmt"

// DailyReturn calculates the fractional change from the previous close.
// The first value has no prior close and yields 0. A zero prior close also
// yields 0 instead of an infinite return.
type DailyReturn struct {
	prev      float64
	processed int
	last      float64
}

// NewDailyReturn creates a daily return calculator
func NewDailyReturn() *DailyReturn {
	return &DailyReturn{}
}

func (d *DailyReturn) Name() string {
	return "daily_return"
}

// Update processes the next close price
func (d *DailyReturn) Update(price float64) float64 {
	ret := 0.0
	if d.processed > 0 && d.prev != 0 {
		ret = (price - d.prev) / d.prev
	}
	d.prev = price
	d.processed++
	d.last = ret
	return ret
}

func (d *DailyReturn) Value() (float64, error) {
	if d.processed == 0 {
		return 0, fmt.Errorf("daily return not ready: no prices processed")
	}
	return d.last, nil
}

func (d *DailyReturn) Reset() {
	*d = DailyReturn{}
}

func (d *DailyReturn) IsReady() bool {
	return d.processed > 0
}

// CumulativeReturn compounds daily returns: prod(1 + r[k]) - 1.
// Unlike the price-based calculators its input is a daily return.
type CumulativeReturn struct {
	growth    float64
	processed int
}

// NewCumulativeReturn creates a cumulative return calculator
func NewCumulativeReturn() *CumulativeReturn {
	return &CumulativeReturn{growth: 1}
}

func (c *CumulativeReturn) Name() string {
	return "cumulative_return"
}

// Update compounds the next daily return and returns the cumulative return to date
func (c *CumulativeReturn) Update(dailyReturn float64) float64 {
	c.growth *= 1 + dailyReturn
	c.processed++
	return c.growth - 1
}

func (c *CumulativeReturn) Value() (float64, error) {
	if c.processed == 0 {
		return 0, fmt.Errorf("cumulative return not ready: no returns processed")
	}
	return c.growth - 1, nil
}

func (c *CumulativeReturn) Reset() {
	c.growth = 1
	c.processed = 0
}

func (c *CumulativeReturn) IsReady() bool {
	return c.processed > 0
}
