package indicator

import (
	"fmt"
	"math"
)

// StdDev calculates the rolling sample standard deviation of prices
// over a trailing window (n-1 denominator).
type StdDev struct {
	period    int
	name      string
	prices    []float64
	ready     bool
	processed int
}

// NewStdDev creates a rolling standard deviation calculator.
// name overrides the default "stddev_<period>" when non-empty.
func NewStdDev(period int, name string) (*StdDev, error) {
	if period < 2 {
		return nil, fmt.Errorf("standard deviation period must be at least 2, got %d", period)
	}
	if name == "" {
		name = fmt.Sprintf("stddev_%d", period)
	}

	return &StdDev{
		period: period,
		name:   name,
		prices: make([]float64, 0, period),
	}, nil
}

func (s *StdDev) Name() string {
	return s.name
}

// Update adds the next close price and returns the sample standard deviation
// of the window, or 0 before the window is full
func (s *StdDev) Update(price float64) float64 {
	s.prices = pushWindow(s.prices, price, s.period)
	s.processed++

	if len(s.prices) >= s.period {
		s.ready = true
		return sampleStdDev(s.prices)
	}

	return 0
}

func (s *StdDev) Value() (float64, error) {
	if !s.ready {
		return 0, fmt.Errorf("%s not ready: need at least %d prices", s.name, s.period)
	}
	return sampleStdDev(s.prices), nil
}

func (s *StdDev) Reset() {
	s.prices = s.prices[:0]
	s.ready = false
	s.processed = 0
}

func (s *StdDev) IsReady() bool {
	return s.ready
}

func (s *StdDev) WindowSize() int {
	return s.period
}

func (s *StdDev) Processed() int {
	return s.processed
}

func sampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n-1))
}
