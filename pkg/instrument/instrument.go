package instrument

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Instrument describes the traded contract: its symbol and the minimum
// price increment. Tick arithmetic goes through decimals so that
// distances expressed in ticks map onto exact prices instead of
// accumulating float error.
type Instrument struct {
	Symbol   string
	TickSize float64
}

// New creates an Instrument and validates the tick size.
func New(symbol string, tickSize float64) (Instrument, error) {
	if symbol == "" {
		return Instrument{}, fmt.Errorf("instrument symbol is required")
	}
	if tickSize <= 0 {
		return Instrument{}, fmt.Errorf("tick size must be positive, got %v", tickSize)
	}
	return Instrument{Symbol: symbol, TickSize: tickSize}, nil
}

// OffsetPrice returns price shifted by the signed number of ticks.
func (i Instrument) OffsetPrice(price float64, ticks int) float64 {
	offset := decimal.NewFromFloat(i.TickSize).Mul(decimal.NewFromInt(int64(ticks)))
	out, _ := decimal.NewFromFloat(price).Add(offset).Float64()
	return out
}

// RoundToTick snaps price to the nearest multiple of the tick size.
func (i Instrument) RoundToTick(price float64) float64 {
	tick := decimal.NewFromFloat(i.TickSize)
	steps := decimal.NewFromFloat(price).Div(tick).Round(0)
	out, _ := steps.Mul(tick).Float64()
	return out
}
