package indicators

import (
	"errors"

	"github.com/quantbed/stochtrail/pkg/types"
)

// SMA represents the Simple Moving Average of closing prices.
// The strategy reads only its slope, never the absolute value.
type SMA struct {
	period    int
	lastValue float64
}

// NewSMA creates a new SMA indicator
func NewSMA(period int) *SMA {
	return &SMA{
		period: period,
	}
}

// Calculate calculates the SMA value over the last period closes
func (s *SMA) Calculate(data []types.OHLCV) (float64, error) {
	if len(data) < s.period {
		return 0, errors.New("insufficient data for SMA calculation")
	}

	sum := 0.0
	for i := len(data) - s.period; i < len(data); i++ {
		sum += data[i].Close
	}

	s.lastValue = sum / float64(s.period)
	return s.lastValue, nil
}

// GetLastValue returns the last calculated value
func (s *SMA) GetLastValue() float64 {
	return s.lastValue
}

// GetName returns the indicator name
func (s *SMA) GetName() string {
	return "SMA"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (s *SMA) GetRequiredPeriods() int {
	return s.period
}

// ResetState clears the indicator for a new data period
func (s *SMA) ResetState() {
	s.lastValue = 0
}
