package indicators

import (
	"errors"
	"math"

	"github.com/quantbed/stochtrail/pkg/types"
)

// ADX represents the Average Directional Index, a direction-agnostic
// trend strength measure on a 0-100 scale. Smoothing follows Wilder's
// method; after the initial pass the value updates incrementally from
// each new bar.
type ADX struct {
	period int

	trSum      float64
	plusDMSum  float64
	minusDMSum float64
	adxSum     float64

	prevHigh  float64
	prevLow   float64
	prevClose float64

	initialized bool
	lastValue   float64
}

// NewADX creates a new ADX indicator
func NewADX(period int) *ADX {
	return &ADX{period: period}
}

// Calculate calculates the ADX value for the most recent bar
func (a *ADX) Calculate(data []types.OHLCV) (float64, error) {
	if len(data) < a.GetRequiredPeriods() {
		return 0, errors.New("insufficient data for ADX calculation")
	}

	if !a.initialized {
		return a.initialCalculation(data)
	}
	return a.incrementalCalculation(data[len(data)-1])
}

// initialCalculation seeds the Wilder sums from the full history and
// averages the first period of DX values into the starting ADX.
func (a *ADX) initialCalculation(data []types.OHLCV) (float64, error) {
	start := len(data) - a.period*2
	if start < 1 {
		start = 1
	}

	a.trSum = 0
	a.plusDMSum = 0
	a.minusDMSum = 0

	for i := start; i < start+a.period && i < len(data); i++ {
		tr, plusDM, minusDM := directionalMovement(data[i], data[i-1])
		a.trSum += tr
		a.plusDMSum += plusDM
		a.minusDMSum += minusDM
	}

	dxValues := []float64{a.currentDX()}
	for i := start + a.period; i < len(data); i++ {
		tr, plusDM, minusDM := directionalMovement(data[i], data[i-1])
		a.smooth(tr, plusDM, minusDM)
		dxValues = append(dxValues, a.currentDX())
	}

	if len(dxValues) >= a.period {
		sum := 0.0
		for i := 0; i < a.period; i++ {
			sum += dxValues[i]
		}
		a.lastValue = sum / float64(a.period)
		a.adxSum = a.lastValue * float64(a.period)
	}

	last := data[len(data)-1]
	a.prevHigh = last.High
	a.prevLow = last.Low
	a.prevClose = last.Close
	a.initialized = true

	return a.lastValue, nil
}

// incrementalCalculation folds one new bar into the smoothed sums.
func (a *ADX) incrementalCalculation(bar types.OHLCV) (float64, error) {
	prev := types.OHLCV{High: a.prevHigh, Low: a.prevLow, Close: a.prevClose}
	tr, plusDM, minusDM := directionalMovement(bar, prev)
	a.smooth(tr, plusDM, minusDM)

	a.adxSum = a.adxSum - (a.adxSum / float64(a.period)) + a.currentDX()
	a.lastValue = a.adxSum / float64(a.period)

	a.prevHigh = bar.High
	a.prevLow = bar.Low
	a.prevClose = bar.Close

	return a.lastValue, nil
}

func (a *ADX) smooth(tr, plusDM, minusDM float64) {
	a.trSum = a.trSum - (a.trSum / float64(a.period)) + tr
	a.plusDMSum = a.plusDMSum - (a.plusDMSum / float64(a.period)) + plusDM
	a.minusDMSum = a.minusDMSum - (a.minusDMSum / float64(a.period)) + minusDM
}

func (a *ADX) currentDX() float64 {
	if a.trSum == 0 {
		return 0
	}
	plusDI := (a.plusDMSum / a.trSum) * 100
	minusDI := (a.minusDMSum / a.trSum) * 100
	diSum := plusDI + minusDI
	if diSum == 0 {
		return 0
	}
	return (math.Abs(plusDI-minusDI) / diSum) * 100
}

// directionalMovement returns the true range and directional movement
// components of one bar relative to its predecessor.
func directionalMovement(current, previous types.OHLCV) (tr, plusDM, minusDM float64) {
	tr = math.Max(current.High-current.Low,
		math.Max(math.Abs(current.High-previous.Close),
			math.Abs(current.Low-previous.Close)))

	highDiff := current.High - previous.High
	lowDiff := previous.Low - current.Low

	if highDiff > lowDiff && highDiff > 0 {
		plusDM = highDiff
	}
	if lowDiff > highDiff && lowDiff > 0 {
		minusDM = lowDiff
	}
	return tr, plusDM, minusDM
}

// GetLastValue returns the last calculated value
func (a *ADX) GetLastValue() float64 {
	return a.lastValue
}

// GetName returns the indicator name
func (a *ADX) GetName() string {
	return "ADX"
}

// GetRequiredPeriods returns minimum periods needed for calculation
func (a *ADX) GetRequiredPeriods() int {
	return a.period * 3 // Wilder smoothing needs extra bars to settle
}

// ResetState resets internal state for new data periods
func (a *ADX) ResetState() {
	a.trSum = 0
	a.plusDMSum = 0
	a.minusDMSum = 0
	a.adxSum = 0
	a.prevHigh = 0
	a.prevLow = 0
	a.prevClose = 0
	a.initialized = false
	a.lastValue = 0
}
