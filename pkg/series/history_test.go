package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbed/stochtrail/pkg/types"
)

func pushBars(h *History, count int) {
	start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		base := 1.1000 + float64(i)*0.0010
		h.Push(types.OHLCV{
			Timestamp: start.Add(time.Duration(i) * 5 * time.Minute),
			Open:      base,
			High:      base + 0.0005,
			Low:       base - 0.0005,
			Close:     base,
			Volume:    100,
		})
	}
}

func TestHistory_BarLookback(t *testing.T) {
	h := NewHistory()
	pushBars(h, 3)

	current, err := h.Bar(0)
	require.NoError(t, err)
	assert.InDelta(t, 1.1020, current.Close, 1e-9)

	previous, err := h.Bar(1)
	require.NoError(t, err)
	assert.InDelta(t, 1.1010, previous.Close, 1e-9)

	oldest, err := h.Bar(2)
	require.NoError(t, err)
	assert.InDelta(t, 1.1000, oldest.Close, 1e-9)
}

func TestHistory_BarOutOfRange(t *testing.T) {
	h := NewHistory()

	_, err := h.Bar(0)
	assert.ErrorIs(t, err, ErrInsufficientHistory)

	pushBars(h, 2)
	_, err = h.Bar(2)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
	_, err = h.Bar(-1)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestHistory_HighestHighLowestLow(t *testing.T) {
	h := NewHistory()
	pushBars(h, 5)

	high, err := h.HighestHigh(3)
	require.NoError(t, err)
	assert.InDelta(t, 1.1045, high, 1e-9, "max high over the last three bars")

	low, err := h.LowestLow(3)
	require.NoError(t, err)
	assert.InDelta(t, 1.1015, low, 1e-9, "min low over the last three bars")

	high, err = h.HighestHigh(1)
	require.NoError(t, err)
	low, err2 := h.LowestLow(1)
	require.NoError(t, err2)
	assert.InDelta(t, 0.0010, high-low, 1e-9, "single bar range")
}

func TestHistory_RangeLookbackTooDeep(t *testing.T) {
	h := NewHistory()
	pushBars(h, 2)

	_, err := h.HighestHigh(3)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
	_, err = h.LowestLow(0)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestHistory_Reset(t *testing.T) {
	h := NewHistory()
	pushBars(h, 4)
	require.Equal(t, 4, h.Len())

	h.Reset()

	assert.Equal(t, 0, h.Len())
	_, err := h.Bar(0)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}
