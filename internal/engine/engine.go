package engine

import (
	"errors"
	"fmt"

	"github.com/quantbed/stochtrail/internal/broker"
	"github.com/quantbed/stochtrail/internal/indicators"
	"github.com/quantbed/stochtrail/pkg/config"
	"github.com/quantbed/stochtrail/pkg/instrument"
	"github.com/quantbed/stochtrail/pkg/series"
	"github.com/quantbed/stochtrail/pkg/types"
)

// Direction is the engine's position state. The engine holds at most
// one contract; transitions only go Flat->Long, Flat->Short and back.
type Direction int

const (
	Flat Direction = iota
	Long
	Short
)

func (d Direction) String() string {
	switch d {
	case Flat:
		return "FLAT"
	case Long:
		return "LONG"
	case Short:
		return "SHORT"
	default:
		return "UNKNOWN"
	}
}

var (
	// ErrPositionOpen rejects an entry while a position is already held.
	ErrPositionOpen = errors.New("a position is already open")
	// ErrNoPosition rejects exit or stop modification while flat.
	ErrNoPosition = errors.New("no open position")
)

// trade carries everything bound to the lifetime of one open position:
// the live protective order pair and the trailing state. It is created
// fresh on entry and discarded on exit, so no trailing state ever
// leaks between trades.
type trade struct {
	direction     Direction
	stop          *broker.Order
	target        *broker.Order
	acceleration  float64
	furthestClose float64
}

// Engine is the per-bar decision core: it gates entries through the
// day/session/volatility/trend filters, detects oscillator band
// crossings, manages the linked stop/target exit pair and trails the
// stop while a position is open. It is single-threaded and driven by
// exactly one ProcessBar call per bar.
type Engine struct {
	cfg        *config.StrategyConfig
	inst       instrument.Instrument
	broker     broker.Broker
	indicators *indicators.Set

	sessionStart int
	sessionEnd   int

	open     *trade
	orderSeq int
}

// New validates the configuration and builds an engine wired to the
// given execution venue.
func New(cfg *config.StrategyConfig, venue broker.Broker) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid strategy config: %w", err)
	}

	inst, err := instrument.New(cfg.Symbol, cfg.TickSize)
	if err != nil {
		return nil, err
	}

	sessionStart, err := config.ParseClock(cfg.SessionStart)
	if err != nil {
		return nil, err
	}
	sessionEnd, err := config.ParseClock(cfg.SessionEnd)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:          cfg,
		inst:         inst,
		broker:       venue,
		indicators:   indicators.NewSet(cfg.StochasticPeriod, cfg.ADXPeriod, cfg.SMAPeriod),
		sessionStart: sessionStart,
		sessionEnd:   sessionEnd,
	}, nil
}

// ProcessBar runs one full decision pass for the newest bar in the
// history. While flat it evaluates entry filters and the oscillator
// crossing; while a position is open it runs the trailing stop
// controller instead. Indicator warmup makes the bar a no-op.
func (e *Engine) ProcessBar(hist *series.History) error {
	bar, err := hist.Bar(0)
	if err != nil {
		return nil
	}

	view, ready := e.indicators.Update(hist.Data())

	if e.open != nil {
		return e.trail(bar.Close)
	}
	if !ready {
		return nil
	}

	longEligible := e.longEligible(bar, hist, view)
	shortEligible := e.shortEligible(bar, hist, view)

	// Long is checked first; if both crossings somehow coincided on one
	// bar the long entry wins.
	if longEligible && crossedAbove(view.DPrev, view.DCurr, e.cfg.BuyLevel) {
		return e.enter(Long, bar.Close)
	} else if shortEligible && crossedBelow(view.DPrev, view.DCurr, e.cfg.SellLevel) {
		return e.enter(Short, bar.Close)
	}

	return nil
}

// Position returns the current position state.
func (e *Engine) Position() Direction {
	if e.open == nil {
		return Flat
	}
	return e.open.direction
}

// StopPrice returns the live protective stop price, if any.
func (e *Engine) StopPrice() (float64, bool) {
	if e.open == nil {
		return 0, false
	}
	return e.open.stop.Price, true
}

// TargetPrice returns the live profit target price, if any.
func (e *Engine) TargetPrice() (float64, bool) {
	if e.open == nil {
		return 0, false
	}
	return e.open.target.Price, true
}

// InSession reports whether the given minute of day falls inside the
// configured session window.
func (e *Engine) InSession(minuteOfDay int) bool {
	return timeAllowed(minuteOfDay, e.sessionStart, e.sessionEnd)
}

// Reset clears indicator and position state for a fresh run. Any open
// position must have been flattened first.
func (e *Engine) Reset() error {
	if e.open != nil {
		return ErrPositionOpen
	}
	e.indicators.Reset()
	return nil
}

func (e *Engine) longEligible(bar types.OHLCV, hist *series.History, view indicators.View) bool {
	return e.open == nil &&
		e.entryGatesOpen(bar, hist) &&
		trendStrengthAllowed(view.ADX, e.cfg.MinADXLong) &&
		trendRising(view.SMACurr, view.SMAPrev)
}

func (e *Engine) shortEligible(bar types.OHLCV, hist *series.History, view indicators.View) bool {
	return e.open == nil &&
		e.entryGatesOpen(bar, hist) &&
		trendStrengthAllowed(view.ADX, e.cfg.MinADXShort) &&
		trendFalling(view.SMACurr, view.SMAPrev)
}

func (e *Engine) entryGatesOpen(bar types.OHLCV, hist *series.History) bool {
	if !e.cfg.DayTradable(bar.Weekday()) {
		return false
	}
	if !timeAllowed(bar.MinuteOfDay(), e.sessionStart, e.sessionEnd) {
		return false
	}
	ok, err := volatilityAllowed(hist, e.cfg.RangeLookback, e.cfg.MinRange)
	return err == nil && ok
}
