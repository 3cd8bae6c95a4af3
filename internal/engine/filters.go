package engine

import (
	"github.com/quantbed/stochtrail/pkg/series"
)

// Entry filter predicates. All comparisons are deliberate about strict
// versus non-strict boundaries: the volatility range must strictly
// exceed the minimum, trend strength is a non-strict floor, and the
// SMA slope must be strictly rising or falling.

// timeAllowed reports whether a minute-of-day falls inside the session
// window, both boundaries inclusive. A start after the end means the
// window wraps past midnight.
func timeAllowed(minuteOfDay, start, end int) bool {
	if start <= end {
		return minuteOfDay >= start && minuteOfDay <= end
	}
	return minuteOfDay >= start || minuteOfDay <= end
}

// volatilityAllowed reports whether the high-low range of the last
// lookback bars strictly exceeds minRange. Too little history counts
// as not allowed.
func volatilityAllowed(hist *series.History, lookback int, minRange float64) (bool, error) {
	highest, err := hist.HighestHigh(lookback)
	if err != nil {
		return false, err
	}
	lowest, err := hist.LowestLow(lookback)
	if err != nil {
		return false, err
	}
	return highest-lowest > minRange, nil
}

// trendStrengthAllowed reports whether ADX meets the configured floor.
func trendStrengthAllowed(adx, minADX float64) bool {
	return adx >= minADX
}

// trendRising reports a strictly rising SMA.
func trendRising(smaCurr, smaPrev float64) bool {
	return smaCurr > smaPrev
}

// trendFalling reports a strictly falling SMA.
func trendFalling(smaCurr, smaPrev float64) bool {
	return smaCurr < smaPrev
}
