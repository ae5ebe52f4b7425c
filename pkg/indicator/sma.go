package indicator

import (
	"fmt"
)

// SMA calculates the Simple Moving Average
// SMA = Sum of prices over period / period
type SMA struct {
	period    int
	name      string
	prices    []float64 // Rolling window of prices
	ready     bool
	processed int
}

// NewSMA creates a new SMA calculator with the specified period
func NewSMA(period int) (*SMA, error) {
	if period < 1 {
		return nil, fmt.Errorf("SMA period must be at least 1, got %d", period)
	}

	return &SMA{
		period: period,
		name:   fmt.Sprintf("sma_%d", period),
		prices: make([]float64, 0, period),
	}, nil
}

// Name returns the indicator name
func (s *SMA) Name() string {
	return s.name
}

// Update adds the next close price and returns the SMA, or 0 before the window is full
func (s *SMA) Update(price float64) float64 {
	s.prices = pushWindow(s.prices, price, s.period)
	s.processed++

	if len(s.prices) >= s.period {
		s.ready = true
		return mean(s.prices)
	}

	return 0
}

// Value returns the current SMA value
func (s *SMA) Value() (float64, error) {
	if !s.ready {
		return 0, fmt.Errorf("SMA not ready: need at least %d prices", s.period)
	}
	return mean(s.prices), nil
}

// Reset clears the SMA state
func (s *SMA) Reset() {
	s.prices = s.prices[:0]
	s.ready = false
	s.processed = 0
}

// IsReady returns true if the SMA has enough data
func (s *SMA) IsReady() bool {
	return s.ready
}

// WindowSize returns the period (number of prices required)
func (s *SMA) WindowSize() int {
	return s.period
}

// Processed returns the number of prices processed
func (s *SMA) Processed() int {
	return s.processed
}
