package indicator

// Calculator is the interface for streaming indicators over an ordered series.
// Values are fed oldest first; each Update returns the indicator value at that
// position, or 0 while the indicator is still warming up.
type Calculator interface {
	// Name returns the unique name of this indicator (e.g., "sma_50", "volatility_20")
	Name() string

	// Update processes the next value of the series and returns the indicator value
	Update(value float64) float64

	// Value returns the current indicator value
	// Returns 0 and error if not enough data has been processed
	Value() (float64, error)

	// Reset clears the indicator state
	Reset()

	// IsReady returns true if the indicator has enough data to produce a valid value
	IsReady() bool
}

// WindowedCalculator extends Calculator for indicators that require a trailing window
type WindowedCalculator interface {
	Calculator

	// WindowSize returns the number of values required for this indicator
	WindowSize() int

	// Processed returns the number of values processed so far
	Processed() int
}
