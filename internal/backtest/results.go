package backtest

import (
	"time"

	"github.com/quantbed/stochtrail/internal/broker"
	"github.com/quantbed/stochtrail/internal/engine"
	"github.com/quantbed/stochtrail/internal/monitoring"
)

// Trade is one completed round trip of a single contract.
type Trade struct {
	Direction  engine.Direction
	EntryTime  time.Time
	ExitTime   time.Time
	EntryPrice float64
	ExitPrice  float64
	ExitReason string
	PnL        float64
}

// Results aggregates a backtest run.
type Results struct {
	Symbol        string
	BarsProcessed int
	Trades        []Trade
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	GrossProfit   float64
	GrossLoss     float64
	NetPnL        float64
	ProfitFactor  float64
	MaxDrawdown   float64
}

func newResults(symbol string) *Results {
	return &Results{
		Symbol: symbol,
		Trades: make([]Trade, 0),
	}
}

// openTrade is the driver-side record of the position in flight.
type openTrade struct {
	direction  engine.Direction
	entryTime  time.Time
	entryPrice float64
}

// applyFill folds one venue fill into the trade log. A market fill
// while flat opens a trade; any fill while a trade is in flight closes
// it, with the filling order's label as the exit reason.
func (r *Results) applyFill(open *openTrade, fill broker.Fill) *openTrade {
	if open == nil {
		if fill.Order.Kind != broker.Market {
			return nil
		}
		direction := engine.Long
		if fill.Order.Side == broker.Sell {
			direction = engine.Short
		}
		return &openTrade{
			direction:  direction,
			entryTime:  fill.Time,
			entryPrice: fill.Price,
		}
	}

	pnl := fill.Price - open.entryPrice
	if open.direction == engine.Short {
		pnl = -pnl
	}

	r.Trades = append(r.Trades, Trade{
		Direction:  open.direction,
		EntryTime:  open.entryTime,
		ExitTime:   fill.Time,
		EntryPrice: open.entryPrice,
		ExitPrice:  fill.Price,
		ExitReason: fill.Order.Label,
		PnL:        pnl,
	})
	monitoring.RecordTrade(r.Symbol, open.direction.String())
	return nil
}

// finalize computes the aggregate statistics from the trade log.
func (r *Results) finalize() {
	r.TotalTrades = len(r.Trades)

	equity := 0.0
	peak := 0.0
	for _, trade := range r.Trades {
		r.NetPnL += trade.PnL
		if trade.PnL > 0 {
			r.WinningTrades++
			r.GrossProfit += trade.PnL
		} else {
			r.LosingTrades++
			r.GrossLoss += -trade.PnL
		}

		equity += trade.PnL
		if equity > peak {
			peak = equity
		}
		if dd := peak - equity; dd > r.MaxDrawdown {
			r.MaxDrawdown = dd
		}
	}

	if r.GrossLoss > 0 {
		r.ProfitFactor = r.GrossProfit / r.GrossLoss
	}
}
