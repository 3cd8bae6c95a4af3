package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *StrategyConfig {
	cfg := DefaultStrategyConfig()
	cfg.Symbol = "EURUSD"
	cfg.TickSize = 0.0001
	return cfg
}

func TestDefaultStrategyConfig(t *testing.T) {
	cfg := DefaultStrategyConfig()

	assert.Equal(t, DefaultStopTicks, cfg.StopTicks)
	assert.Equal(t, DefaultProfitTicks, cfg.ProfitTicks)
	assert.Equal(t, DefaultStopAcceleration, cfg.StopAcceleration)
	assert.Equal(t, DefaultBuyLevel, cfg.BuyLevel)
	assert.Equal(t, DefaultSellLevel, cfg.SellLevel)

	for _, day := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		assert.True(t, cfg.DayTradable(day), day.String())
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	cases := []struct {
		name   string
		mutate func(*StrategyConfig)
	}{
		{"missing symbol", func(c *StrategyConfig) { c.Symbol = "" }},
		{"zero tick size", func(c *StrategyConfig) { c.TickSize = 0 }},
		{"bad session start", func(c *StrategyConfig) { c.SessionStart = "25:00" }},
		{"bad session end", func(c *StrategyConfig) { c.SessionEnd = "nine" }},
		{"zero range lookback", func(c *StrategyConfig) { c.RangeLookback = 0 }},
		{"negative min range", func(c *StrategyConfig) { c.MinRange = -0.001 }},
		{"zero adx period", func(c *StrategyConfig) { c.ADXPeriod = 0 }},
		{"zero sma period", func(c *StrategyConfig) { c.SMAPeriod = 0 }},
		{"zero stochastic period", func(c *StrategyConfig) { c.StochasticPeriod = 0 }},
		{"negative adx threshold", func(c *StrategyConfig) { c.MinADXLong = -1 }},
		{"zero stop ticks", func(c *StrategyConfig) { c.StopTicks = 0 }},
		{"zero profit ticks", func(c *StrategyConfig) { c.ProfitTicks = 0 }},
		{"zero acceleration", func(c *StrategyConfig) { c.StopAcceleration = 0 }},
		{"level out of range", func(c *StrategyConfig) { c.BuyLevel = 101 }},
		{"inverted levels", func(c *StrategyConfig) { c.BuyLevel = 40; c.SellLevel = 60 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadStrategyConfig_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strategy.json")
	raw := `{
		"symbol": "EURUSD",
		"tick_size": 0.0001,
		"stop_ticks": 30,
		"trade_friday": false
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := LoadStrategyConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "EURUSD", cfg.Symbol)
	assert.Equal(t, 30, cfg.StopTicks)
	assert.False(t, cfg.DayTradable(time.Friday))
	assert.Equal(t, DefaultProfitTicks, cfg.ProfitTicks, "absent fields keep defaults")
	assert.Equal(t, DefaultBuyLevel, cfg.BuyLevel)
}

func TestLoadStrategyConfig_Errors(t *testing.T) {
	_, err := LoadStrategyConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadStrategyConfig(path)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"symbol":"EURUSD","tick_size":-1}`), 0o644))
	_, err = LoadStrategyConfig(invalid)
	assert.Error(t, err, "validation runs on load")
}

func TestDayTradable_WeekendDefaultsOpen(t *testing.T) {
	cfg := validConfig()
	assert.True(t, cfg.DayTradable(time.Saturday))
	assert.True(t, cfg.DayTradable(time.Sunday))
}

func TestParseClock(t *testing.T) {
	mins, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, mins)

	mins, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, mins)

	mins, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23*60+59, mins)

	for _, bad := range []string{"", "9:30:00", "24:00", "12-30", "noon"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}
