package indicators

import (
	"errors"

	"github.com/quantbed/stochtrail/pkg/types"
)

// Smoothing window applied to fast %K to produce %D.
const stochasticDSmoothing = 3

// StochasticD represents the smoothed stochastic oscillator (%D).
// Fast %K locates the close within the highest-high/lowest-low range of
// the last period bars (0-100); %D is a 3-bar simple average of %K and
// is what the strategy's crossing signal reads.
type StochasticD struct {
	period    int
	lastValue float64
}

// NewStochasticD creates a new %D oscillator with the given %K period.
func NewStochasticD(period int) *StochasticD {
	return &StochasticD{
		period: period,
	}
}

// Calculate calculates the %D value for the most recent bar
func (s *StochasticD) Calculate(data []types.OHLCV) (float64, error) {
	if len(data) < s.GetRequiredPeriods() {
		return 0, errors.New("insufficient data for stochastic %D calculation")
	}

	sum := 0.0
	for back := 0; back < stochasticDSmoothing; back++ {
		k, err := s.fastK(data[:len(data)-back])
		if err != nil {
			return 0, err
		}
		sum += k
	}

	s.lastValue = sum / stochasticDSmoothing
	return s.lastValue, nil
}

// fastK computes %K for the last bar of the slice.
func (s *StochasticD) fastK(data []types.OHLCV) (float64, error) {
	if len(data) < s.period {
		return 0, errors.New("insufficient data for stochastic %K calculation")
	}

	window := data[len(data)-s.period:]
	highest := window[0].High
	lowest := window[0].Low
	for _, bar := range window {
		if bar.High > highest {
			highest = bar.High
		}
		if bar.Low < lowest {
			lowest = bar.Low
		}
	}

	// Flat window: the close sits nowhere in a zero range, report neutral.
	if highest == lowest {
		return 50.0, nil
	}

	close := data[len(data)-1].Close
	return (close - lowest) / (highest - lowest) * 100, nil
}

// GetLastValue returns the last calculated value
func (s *StochasticD) GetLastValue() float64 {
	return s.lastValue
}

// GetName returns the indicator name
func (s *StochasticD) GetName() string {
	return "Stochastic %D"
}

// GetRequiredPeriods returns the minimum number of bars needed
func (s *StochasticD) GetRequiredPeriods() int {
	return s.period + stochasticDSmoothing - 1
}

// ResetState clears the indicator for a new data period
func (s *StochasticD) ResetState() {
	s.lastValue = 0
}
