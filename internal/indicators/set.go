package indicators

import (
	"github.com/quantbed/stochtrail/pkg/types"
)

// View is the per-bar indicator snapshot the engine reads: the last two
// values of %D and SMA plus the current ADX. Index convention follows
// the bar feed: Curr is the current bar, Prev the bar before it.
type View struct {
	DCurr   float64
	DPrev   float64
	ADX     float64
	SMACurr float64
	SMAPrev float64
}

// Set is the indicator facade. Update recomputes every indicator for
// the newest bar and tracks the previous bar's values so the engine
// never indexes into indicator series directly.
type Set struct {
	stochastic *StochasticD
	adx        *ADX
	sma        *SMA

	prevD    float64
	prevSMA  float64
	havePrev bool
}

// NewSet wires the three strategy indicators with their periods.
func NewSet(stochasticPeriod, adxPeriod, smaPeriod int) *Set {
	return &Set{
		stochastic: NewStochasticD(stochasticPeriod),
		adx:        NewADX(adxPeriod),
		sma:        NewSMA(smaPeriod),
	}
}

// Update feeds the chronological bar slice to every indicator. It
// returns the snapshot and whether it is usable: during warmup, or on
// the first bar every indicator produced a value (no previous values
// yet), ok is false and the engine treats the bar as "no signal".
func (s *Set) Update(data []types.OHLCV) (View, bool) {
	d, errD := s.stochastic.Calculate(data)
	adx, errADX := s.adx.Calculate(data)
	sma, errSMA := s.sma.Calculate(data)

	if errD != nil || errADX != nil || errSMA != nil {
		return View{}, false
	}

	view := View{
		DCurr:   d,
		DPrev:   s.prevD,
		ADX:     adx,
		SMACurr: sma,
		SMAPrev: s.prevSMA,
	}
	ready := s.havePrev

	s.prevD = d
	s.prevSMA = sma
	s.havePrev = true

	return view, ready
}

// Reset clears all indicator state for a fresh run.
func (s *Set) Reset() {
	s.stochastic.ResetState()
	s.adx.ResetState()
	s.sma.ResetState()
	s.prevD = 0
	s.prevSMA = 0
	s.havePrev = false
}
