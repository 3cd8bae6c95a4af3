package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbed/stochtrail/pkg/types"
)

func trendingBars(start, step float64, count int) []types.OHLCV {
	bars := make([]types.OHLCV, count)
	price := start
	for i := range bars {
		bars[i] = types.OHLCV{Open: price, High: price + 0.5, Low: price - 0.5, Close: price, Volume: 100}
		price += step
	}
	return bars
}

func TestADX_InsufficientData(t *testing.T) {
	adx := NewADX(14)
	_, err := adx.Calculate(trendingBars(100, 1, 10))
	assert.Error(t, err)
}

func TestADX_StrongTrendReadsHigh(t *testing.T) {
	adx := NewADX(4)
	data := trendingBars(100, 2, 30)

	var value float64
	var err error
	for i := adx.GetRequiredPeriods(); i <= len(data); i++ {
		value, err = adx.Calculate(data[:i])
		require.NoError(t, err)
	}

	// Every bar moves the same direction, so directional movement is
	// one-sided and the index saturates near the top of its scale.
	assert.Greater(t, value, 90.0)
	assert.LessOrEqual(t, value, 100.0)
}

func TestADX_BoundedOnChoppyData(t *testing.T) {
	adx := NewADX(3)
	closes := []float64{100, 102, 99, 103, 98, 104, 97, 105, 96, 106, 95, 107}
	bars := make([]types.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = types.OHLCV{Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 100}
	}

	for i := adx.GetRequiredPeriods(); i <= len(bars); i++ {
		value, err := adx.Calculate(bars[:i])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, value, 0.0)
		assert.LessOrEqual(t, value, 100.0)
	}
}

func TestADX_ResetStateForcesReseed(t *testing.T) {
	adx := NewADX(3)
	data := trendingBars(100, 1, 20)

	_, err := adx.Calculate(data)
	require.NoError(t, err)
	assert.NotZero(t, adx.GetLastValue())

	adx.ResetState()
	assert.Zero(t, adx.GetLastValue())

	// After a reset the indicator reseeds from history without error.
	value, err := adx.Calculate(data)
	require.NoError(t, err)
	assert.Greater(t, value, 0.0)
}

func TestADX_RequiredPeriods(t *testing.T) {
	assert.Equal(t, 42, NewADX(14).GetRequiredPeriods())
}
