package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Default strategy parameter values
const (
	DefaultRangeLookback    = 10
	DefaultMinRange         = 0.0
	DefaultADXPeriod        = 14
	DefaultSMAPeriod        = 50
	DefaultStochasticPeriod = 14
	DefaultMinADXLong       = 20.0
	DefaultMinADXShort      = 20.0
	DefaultStopTicks        = 24
	DefaultProfitTicks      = 77
	DefaultStopAcceleration = 0.2
	DefaultBuyLevel         = 51.0
	DefaultSellLevel        = 49.0
)

// StrategyConfig holds all parameters of the intraday stochastic-cross
// strategy. Values are immutable after Load; Validate must pass before
// the engine is constructed.
type StrategyConfig struct {
	Symbol   string  `json:"symbol"`
	TickSize float64 `json:"tick_size"`

	// Day-of-week gates. A day without an explicit disable stays tradable.
	TradeMonday    bool `json:"trade_monday"`
	TradeTuesday   bool `json:"trade_tuesday"`
	TradeWednesday bool `json:"trade_wednesday"`
	TradeThursday  bool `json:"trade_thursday"`
	TradeFriday    bool `json:"trade_friday"`

	// Session window as "HH:MM" clock times, both boundaries inclusive.
	// Start after end means the window wraps past midnight.
	SessionStart string `json:"session_start"`
	SessionEnd   string `json:"session_end"`

	RangeLookback int     `json:"range_lookback"`
	MinRange      float64 `json:"min_range"`

	ADXPeriod        int     `json:"adx_period"`
	SMAPeriod        int     `json:"sma_period"`
	StochasticPeriod int     `json:"stochastic_period"`
	MinADXLong       float64 `json:"min_adx_long"`
	MinADXShort      float64 `json:"min_adx_short"`

	StopTicks        int     `json:"stop_ticks"`
	ProfitTicks      int     `json:"profit_ticks"`
	StopAcceleration float64 `json:"stop_acceleration"`

	BuyLevel  float64 `json:"buy_level"`
	SellLevel float64 `json:"sell_level"`
}

// DefaultStrategyConfig returns a config pre-filled with defaults.
// All weekdays are tradable until a config file disables them.
func DefaultStrategyConfig() *StrategyConfig {
	return &StrategyConfig{
		TradeMonday:      true,
		TradeTuesday:     true,
		TradeWednesday:   true,
		TradeThursday:    true,
		TradeFriday:      true,
		SessionStart:     "00:00",
		SessionEnd:       "23:59",
		RangeLookback:    DefaultRangeLookback,
		MinRange:         DefaultMinRange,
		ADXPeriod:        DefaultADXPeriod,
		SMAPeriod:        DefaultSMAPeriod,
		StochasticPeriod: DefaultStochasticPeriod,
		MinADXLong:       DefaultMinADXLong,
		MinADXShort:      DefaultMinADXShort,
		StopTicks:        DefaultStopTicks,
		ProfitTicks:      DefaultProfitTicks,
		StopAcceleration: DefaultStopAcceleration,
		BuyLevel:         DefaultBuyLevel,
		SellLevel:        DefaultSellLevel,
	}
}

// LoadStrategyConfig reads a JSON config file over the defaults, so
// absent fields keep their default values.
func LoadStrategyConfig(path string) (*StrategyConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := DefaultStrategyConfig()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every parameter's domain. Any violation is fatal for
// engine construction.
func (c *StrategyConfig) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if c.TickSize <= 0 {
		return fmt.Errorf("tick_size must be positive, got %v", c.TickSize)
	}
	if _, err := ParseClock(c.SessionStart); err != nil {
		return fmt.Errorf("invalid session_start: %w", err)
	}
	if _, err := ParseClock(c.SessionEnd); err != nil {
		return fmt.Errorf("invalid session_end: %w", err)
	}
	if c.RangeLookback <= 0 {
		return fmt.Errorf("range_lookback must be positive, got %d", c.RangeLookback)
	}
	if c.MinRange < 0 {
		return fmt.Errorf("min_range must not be negative, got %v", c.MinRange)
	}
	if c.ADXPeriod <= 0 {
		return fmt.Errorf("adx_period must be positive, got %d", c.ADXPeriod)
	}
	if c.SMAPeriod <= 0 {
		return fmt.Errorf("sma_period must be positive, got %d", c.SMAPeriod)
	}
	if c.StochasticPeriod <= 0 {
		return fmt.Errorf("stochastic_period must be positive, got %d", c.StochasticPeriod)
	}
	if c.MinADXLong < 0 || c.MinADXShort < 0 {
		return fmt.Errorf("min_adx thresholds must not be negative")
	}
	if c.StopTicks <= 0 {
		return fmt.Errorf("stop_ticks must be positive, got %d", c.StopTicks)
	}
	if c.ProfitTicks <= 0 {
		return fmt.Errorf("profit_ticks must be positive, got %d", c.ProfitTicks)
	}
	if c.StopAcceleration <= 0 {
		return fmt.Errorf("stop_acceleration must be positive, got %v", c.StopAcceleration)
	}
	if c.BuyLevel < 0 || c.BuyLevel > 100 || c.SellLevel < 0 || c.SellLevel > 100 {
		return fmt.Errorf("oscillator levels must be within 0-100")
	}
	if c.BuyLevel <= c.SellLevel {
		return fmt.Errorf("buy_level (%v) must be greater than sell_level (%v)", c.BuyLevel, c.SellLevel)
	}
	return nil
}

// DayTradable reports whether entries are permitted on the given day.
// Saturday and Sunday carry no disable flag and remain tradable; a bar
// feed normally never produces them.
func (c *StrategyConfig) DayTradable(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return c.TradeMonday
	case time.Tuesday:
		return c.TradeTuesday
	case time.Wednesday:
		return c.TradeWednesday
	case time.Thursday:
		return c.TradeThursday
	case time.Friday:
		return c.TradeFriday
	default:
		return true
	}
}

// ParseClock parses an "HH:MM" clock time into minutes since midnight.
func ParseClock(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM clock time, got %q", clock)
	}
	return t.Hour()*60 + t.Minute(), nil
}
