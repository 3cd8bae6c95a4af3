package indicators

import (
	"github.com/quantbed/stochtrail/pkg/types"
)

// TechnicalIndicator is the common surface of the strategy's indicators.
// Calculate consumes the full chronological bar slice and returns the
// value for the most recent bar, or an error while the indicator is
// still warming up.
type TechnicalIndicator interface {
	Calculate(data []types.OHLCV) (float64, error)
	GetName() string
	GetRequiredPeriods() int
	ResetState()
}
