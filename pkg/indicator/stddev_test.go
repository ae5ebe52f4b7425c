package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdDev_New(t *testing.T) {
	sd, err := NewStdDev(20, "volatility_20")
	require.NoError(t, err)
	assert.Equal(t, "volatility_20", sd.Name())
	assert.Equal(t, 20, sd.WindowSize())

	sd, err = NewStdDev(5, "")
	require.NoError(t, err)
	assert.Equal(t, "stddev_5", sd.Name())

	_, err = NewStdDev(1, "")
	assert.Error(t, err, "a single-value window has no sample deviation")
}

func TestStdDev_WarmUp(t *testing.T) {
	sd, _ := NewStdDev(4, "")

	for i, p := range []float64{10, 12, 11} {
		assert.Zero(t, sd.Update(p), "index %d", i)
		assert.False(t, sd.IsReady())
	}
	_, err := sd.Value()
	assert.Error(t, err)

	got := sd.Update(13)
	assert.True(t, sd.IsReady())
	// mean 11.5, squared deviations 2.25+0.25+0.25+2.25 = 5, / 3
	assert.InDelta(t, math.Sqrt(5.0/3.0), got, 1e-12)
}

func TestStdDev_RollingWindow(t *testing.T) {
	sd, _ := NewStdDev(3, "")

	for _, p := range []float64{100, 1, 2, 3} {
		sd.Update(p)
	}

	// Window holds 1, 2, 3: sample std dev is 1
	val, err := sd.Value()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, val, 1e-12)
	assert.Equal(t, 4, sd.Processed())
}

func TestStdDev_ConstantPriceIsZero(t *testing.T) {
	sd, _ := NewStdDev(5, "")
	var last float64
	for i := 0; i < 8; i++ {
		last = sd.Update(42)
	}
	assert.True(t, sd.IsReady())
	assert.Equal(t, 0.0, last)
}

func TestStdDev_Reset(t *testing.T) {
	sd, _ := NewStdDev(2, "")
	sd.Update(1)
	sd.Update(2)
	require.True(t, sd.IsReady())

	sd.Reset()
	assert.False(t, sd.IsReady())
	assert.Equal(t, 0, sd.Processed())
	assert.Zero(t, sd.Update(5))
}
