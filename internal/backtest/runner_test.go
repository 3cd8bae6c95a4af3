package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbed/stochtrail/internal/engine"
	"github.com/quantbed/stochtrail/pkg/config"
	"github.com/quantbed/stochtrail/pkg/types"
)

func runnerConfig() *config.StrategyConfig {
	cfg := config.DefaultStrategyConfig()
	cfg.Symbol = "EURUSD"
	cfg.TickSize = 0.0001
	cfg.RangeLookback = 1
	cfg.MinRange = 0
	cfg.ADXPeriod = 1
	cfg.SMAPeriod = 1
	cfg.StochasticPeriod = 2
	cfg.MinADXLong = 0
	cfg.MinADXShort = 0
	return cfg
}

func sessionBar(ts time.Time, close float64) types.OHLCV {
	return types.OHLCV{
		Timestamp: ts,
		Open:      close,
		High:      close + 0.0005,
		Low:       close - 0.0005,
		Close:     close,
		Volume:    100,
	}
}

// entryBars declines then rallies so the oscillator crosses up through
// the buy level on the last bar, which closes at 1.0990. Timestamps
// are five-minute bars on a Wednesday starting at 09:00.
func entryBars() []types.OHLCV {
	closes := []float64{1.1000, 1.0990, 1.0980, 1.0970, 1.0975, 1.0990}
	start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	bars := make([]types.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = sessionBar(start.Add(time.Duration(i)*5*time.Minute), c)
	}
	return bars
}

func TestRun_StopHitClosesTrade(t *testing.T) {
	runner, err := NewRunner(runnerConfig())
	require.NoError(t, err)

	// The crash bar's low trades through the protective stop at 1.0966.
	bars := entryBars()
	bars = append(bars, types.OHLCV{
		Timestamp: bars[len(bars)-1].Timestamp.Add(5 * time.Minute),
		Open:      1.0990,
		High:      1.0992,
		Low:       1.0940,
		Close:     1.0950,
		Volume:    100,
	})

	results, err := runner.Run(bars)
	require.NoError(t, err)

	assert.Equal(t, len(bars), results.BarsProcessed)
	require.Len(t, results.Trades, 1)
	trade := results.Trades[0]
	assert.Equal(t, engine.Long, trade.Direction)
	assert.InDelta(t, 1.0990, trade.EntryPrice, 1e-9)
	assert.InDelta(t, 1.0966, trade.ExitPrice, 1e-9, "stop fills at its own price")
	assert.Equal(t, "catastrophic stop", trade.ExitReason)
	assert.InDelta(t, -0.0024, trade.PnL, 1e-9)

	assert.Equal(t, 1, results.TotalTrades)
	assert.Equal(t, 1, results.LosingTrades)
	assert.Equal(t, 0, results.WinningTrades)
	assert.InDelta(t, 0.0024, results.GrossLoss, 1e-9)
	assert.InDelta(t, -0.0024, results.NetPnL, 1e-9)
	assert.InDelta(t, 0.0024, results.MaxDrawdown, 1e-9)
	assert.Zero(t, results.ProfitFactor)
}

func TestRun_TargetHitClosesTrade(t *testing.T) {
	runner, err := NewRunner(runnerConfig())
	require.NoError(t, err)

	// The rally bar's high trades through the profit target at 1.1067.
	bars := entryBars()
	bars = append(bars, types.OHLCV{
		Timestamp: bars[len(bars)-1].Timestamp.Add(5 * time.Minute),
		Open:      1.0990,
		High:      1.1070,
		Low:       1.0988,
		Close:     1.1065,
		Volume:    100,
	})

	results, err := runner.Run(bars)
	require.NoError(t, err)

	require.Len(t, results.Trades, 1)
	trade := results.Trades[0]
	assert.InDelta(t, 1.1067, trade.ExitPrice, 1e-9)
	assert.Equal(t, "profit target", trade.ExitReason)
	assert.InDelta(t, 0.0077, trade.PnL, 1e-9)
	assert.Equal(t, 1, results.WinningTrades)
	assert.InDelta(t, 0.0077, results.GrossProfit, 1e-9)
}

func TestRun_SessionEndFlattensOpenPosition(t *testing.T) {
	cfg := runnerConfig()
	cfg.SessionStart = "09:00"
	cfg.SessionEnd = "09:25"
	runner, err := NewRunner(cfg)
	require.NoError(t, err)

	// Entry fires on the 09:25 bar; the 09:30 bar falls outside the
	// session and neither protective order is reachable on it.
	bars := entryBars()
	bars = append(bars, types.OHLCV{
		Timestamp: bars[len(bars)-1].Timestamp.Add(5 * time.Minute),
		Open:      1.0992,
		High:      1.1005,
		Low:       1.0990,
		Close:     1.1000,
		Volume:    100,
	})

	results, err := runner.Run(bars)
	require.NoError(t, err)

	require.Len(t, results.Trades, 1)
	trade := results.Trades[0]
	assert.Equal(t, "flatten", trade.ExitReason)
	assert.InDelta(t, 1.1000, trade.ExitPrice, 1e-9, "flatten fills at the bar close")
	assert.InDelta(t, 0.0010, trade.PnL, 1e-9)
}

func TestRun_EndOfDataFlattensOpenPosition(t *testing.T) {
	runner, err := NewRunner(runnerConfig())
	require.NoError(t, err)

	results, err := runner.Run(entryBars())
	require.NoError(t, err)

	// The entry bar is the last bar, so the final flatten closes the
	// trade at the same close it entered on.
	require.Len(t, results.Trades, 1)
	trade := results.Trades[0]
	assert.Equal(t, "flatten", trade.ExitReason)
	assert.InDelta(t, 0.0, trade.PnL, 1e-9)
}

func TestRun_QuietMarketProducesNoTrades(t *testing.T) {
	runner, err := NewRunner(runnerConfig())
	require.NoError(t, err)

	start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	bars := make([]types.OHLCV, 10)
	for i := range bars {
		bars[i] = sessionBar(start.Add(time.Duration(i)*5*time.Minute), 1.1000)
	}

	results, err := runner.Run(bars)
	require.NoError(t, err)

	assert.Empty(t, results.Trades)
	assert.Equal(t, 10, results.BarsProcessed)
	assert.Zero(t, results.NetPnL)
}
