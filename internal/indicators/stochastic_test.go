package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStochasticD_SteadyUptrend(t *testing.T) {
	stoch := NewStochasticD(2)
	data := closesToBars([]float64{10, 11, 12, 13})

	// Each one-point step closes at 75% of its two-bar range, so the
	// smoothed value is 75 as well.
	value, err := stoch.Calculate(data)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, value, 1e-9)
	assert.InDelta(t, 75.0, stoch.GetLastValue(), 1e-9)
}

func TestStochasticD_MixedCloses(t *testing.T) {
	stoch := NewStochasticD(2)
	data := closesToBars([]float64{10, 12, 11, 14})

	value, err := stoch.Calculate(data)
	require.NoError(t, err)
	// %K values for the last three bars are 83.33, 25 and 87.5.
	assert.InDelta(t, (250.0/3.0+25.0+87.5)/3.0, value, 1e-9)
}

func TestStochasticD_FlatWindowIsNeutral(t *testing.T) {
	stoch := NewStochasticD(2)
	bars := closesToBars([]float64{10, 10, 10, 10})
	for i := range bars {
		bars[i].High = 10
		bars[i].Low = 10
	}

	value, err := stoch.Calculate(bars)
	require.NoError(t, err)
	assert.Equal(t, 50.0, value, "zero range reports the midpoint")
}

func TestStochasticD_InsufficientData(t *testing.T) {
	stoch := NewStochasticD(2)
	_, err := stoch.Calculate(closesToBars([]float64{10, 11, 12}))
	assert.Error(t, err, "needs period plus smoothing history")
}

func TestStochasticD_RequiredPeriods(t *testing.T) {
	assert.Equal(t, 4, NewStochasticD(2).GetRequiredPeriods())
	assert.Equal(t, 16, NewStochasticD(14).GetRequiredPeriods())
}

func TestStochasticD_BoundedRange(t *testing.T) {
	stoch := NewStochasticD(3)
	data := closesToBars([]float64{10, 25, 8, 31, 17, 22, 29, 12})

	value, err := stoch.Calculate(data)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, value, 0.0)
	assert.LessOrEqual(t, value, 100.0)
}
