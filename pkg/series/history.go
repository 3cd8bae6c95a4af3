package series

import (
	"errors"

	"github.com/quantbed/stochtrail/pkg/types"
)

// ErrInsufficientHistory is returned when a look-back request reaches
// further than the number of bars observed so far.
var ErrInsufficientHistory = errors.New("insufficient bar history")

// History is a bounded look-back view over a chronological bar stream.
// Bars are pushed in timestamp order; look-back index 0 is the current
// bar, index 1 the previous bar, and so on.
type History struct {
	bars []types.OHLCV
}

// NewHistory creates an empty bar history.
func NewHistory() *History {
	return &History{bars: make([]types.OHLCV, 0, 1024)}
}

// Push appends the next bar of the stream.
func (h *History) Push(bar types.OHLCV) {
	h.bars = append(h.bars, bar)
}

// Len returns the number of bars observed so far.
func (h *History) Len() int {
	return len(h.bars)
}

// Bar returns the bar nBack bars ago (0 = current bar).
func (h *History) Bar(nBack int) (types.OHLCV, error) {
	if nBack < 0 || nBack >= len(h.bars) {
		return types.OHLCV{}, ErrInsufficientHistory
	}
	return h.bars[len(h.bars)-1-nBack], nil
}

// HighestHigh returns the maximum high over the last lookback bars,
// including the current bar.
func (h *History) HighestHigh(lookback int) (float64, error) {
	if lookback <= 0 || lookback > len(h.bars) {
		return 0, ErrInsufficientHistory
	}
	max := h.bars[len(h.bars)-1].High
	for _, bar := range h.bars[len(h.bars)-lookback:] {
		if bar.High > max {
			max = bar.High
		}
	}
	return max, nil
}

// LowestLow returns the minimum low over the last lookback bars,
// including the current bar.
func (h *History) LowestLow(lookback int) (float64, error) {
	if lookback <= 0 || lookback > len(h.bars) {
		return 0, ErrInsufficientHistory
	}
	min := h.bars[len(h.bars)-1].Low
	for _, bar := range h.bars[len(h.bars)-lookback:] {
		if bar.Low < min {
			min = bar.Low
		}
	}
	return min, nil
}

// Data returns the chronological bar slice for indicator calculations.
// The slice is shared with the history and must not be mutated.
func (h *History) Data() []types.OHLCV {
	return h.bars
}

// Reset discards all observed bars, for reuse across backtest runs.
func (h *History) Reset() {
	h.bars = h.bars[:0]
}
