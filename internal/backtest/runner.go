package backtest

import (
	"fmt"

	"github.com/quantbed/stochtrail/internal/broker"
	"github.com/quantbed/stochtrail/internal/engine"
	"github.com/quantbed/stochtrail/internal/monitoring"
	"github.com/quantbed/stochtrail/pkg/config"
	"github.com/quantbed/stochtrail/pkg/series"
	"github.com/quantbed/stochtrail/pkg/types"
)

// Runner streams historical bars through the decision engine against a
// simulated venue. Per bar it first lets the venue resolve protective
// orders against the bar's range and delivers those fills to the
// engine, then applies the end-of-session flatten directive, then runs
// the engine's decision pass.
type Runner struct {
	cfg    *config.StrategyConfig
	sim    *broker.Sim
	engine *engine.Engine
	health *monitoring.HealthChecker
}

// NewRunner builds a runner with a fresh simulated venue and engine.
func NewRunner(cfg *config.StrategyConfig) (*Runner, error) {
	sim := broker.NewSim(cfg.Symbol)
	eng, err := engine.New(cfg, sim)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:    cfg,
		sim:    sim,
		engine: eng,
	}, nil
}

// SetHealthChecker attaches an optional health checker updated per bar.
func (r *Runner) SetHealthChecker(h *monitoring.HealthChecker) {
	r.health = h
}

// Run executes the backtest over chronologically ordered bars.
func (r *Runner) Run(data []types.OHLCV) (*Results, error) {
	results := newResults(r.cfg.Symbol)
	hist := series.NewHistory()
	var open *openTrade

	for _, bar := range data {
		hist.Push(bar)

		// Protective orders placed on earlier bars resolve against this
		// bar's range before the decision pass sees it.
		r.sim.EvaluateBar(bar)
		for _, fill := range r.sim.TakeFills() {
			r.engine.OnOrderFilled(fill.Order.ID)
			open = results.applyFill(open, fill)
		}

		r.sim.SetMark(bar.Close, bar.Timestamp)

		// Session end force-flattens any open position.
		if r.engine.Position() != engine.Flat && !r.engine.InSession(bar.MinuteOfDay()) {
			if err := r.engine.Flatten(); err != nil {
				return nil, fmt.Errorf("session-end flatten failed at %s: %w", bar.Timestamp, err)
			}
		}

		if err := r.engine.ProcessBar(hist); err != nil {
			return nil, fmt.Errorf("bar %s: %w", bar.Timestamp, err)
		}

		for _, fill := range r.sim.TakeFills() {
			open = results.applyFill(open, fill)
		}

		results.BarsProcessed++
		monitoring.UpdatePrice(r.cfg.Symbol, bar.Close)
		if r.health != nil {
			r.health.UpdateBar(bar.Timestamp, bar.Close)
		}
	}

	// Close out whatever is still open at the end of the data.
	if err := r.engine.Flatten(); err != nil {
		return nil, fmt.Errorf("final flatten failed: %w", err)
	}
	for _, fill := range r.sim.TakeFills() {
		open = results.applyFill(open, fill)
	}

	results.finalize()
	return results, nil
}
