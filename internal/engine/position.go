package engine

import (
	"fmt"

	"github.com/quantbed/stochtrail/internal/broker"
	"github.com/quantbed/stochtrail/internal/monitoring"
)

// Order labels as they appear at the venue and in trade logs.
const (
	labelEntry    = "entry"
	labelStop     = "catastrophic stop"
	labelTarget   = "profit target"
	labelTrailing = "trailing stop"
	labelFlatten  = "flatten"
)

func (e *Engine) nextOrderID() string {
	e.orderSeq++
	return fmt.Sprintf("%s-%d", e.inst.Symbol, e.orderSeq)
}

// enter opens a one-contract position: a market order in the entry
// direction plus a mutually linked stop/limit exit pair, submitted in
// the fixed order entry, stop, target. Trailing state starts fresh
// from the entry bar's close.
func (e *Engine) enter(dir Direction, close float64) error {
	if e.open != nil {
		return ErrPositionOpen
	}

	var entrySide, exitSide broker.Side
	var stopPrice, targetPrice float64
	switch dir {
	case Long:
		entrySide, exitSide = broker.Buy, broker.Sell
		stopPrice = e.inst.OffsetPrice(close, -e.cfg.StopTicks)
		targetPrice = e.inst.OffsetPrice(close, e.cfg.ProfitTicks)
	case Short:
		entrySide, exitSide = broker.Sell, broker.Buy
		stopPrice = e.inst.OffsetPrice(close, e.cfg.StopTicks)
		targetPrice = e.inst.OffsetPrice(close, -e.cfg.ProfitTicks)
	default:
		return fmt.Errorf("cannot enter a %s position", dir)
	}

	entry := &broker.Order{
		ID:       e.nextOrderID(),
		Side:     entrySide,
		Kind:     broker.Market,
		Quantity: 1,
		Label:    labelEntry,
	}
	stop := &broker.Order{
		ID:       e.nextOrderID(),
		Side:     exitSide,
		Kind:     broker.Stop,
		Quantity: 1,
		Price:    stopPrice,
		Label:    labelStop,
	}
	target := &broker.Order{
		ID:       e.nextOrderID(),
		Side:     exitSide,
		Kind:     broker.Limit,
		Quantity: 1,
		Price:    targetPrice,
		Label:    labelTarget,
	}

	// Declare the OCO pairing before submission; the venue enforces the
	// cancel-on-fill behavior, the engine only emits the link.
	stop.LinkedID = target.ID
	target.LinkedID = stop.ID

	if err := e.broker.Submit(entry); err != nil {
		return fmt.Errorf("entry order rejected: %w", err)
	}
	if err := e.broker.Submit(stop); err != nil {
		return fmt.Errorf("stop order rejected: %w", err)
	}
	if err := e.broker.Submit(target); err != nil {
		return fmt.Errorf("target order rejected: %w", err)
	}

	e.open = &trade{
		direction:     dir,
		stop:          stop,
		target:        target,
		acceleration:  e.cfg.StopAcceleration,
		furthestClose: close,
	}

	monitoring.UpdatePosition(e.inst.Symbol, positionGauge(dir))
	return nil
}

// exit closes the open position: both protective orders are cancelled
// before the closing market order goes out, so no stale stop can race
// the flatten at the venue. The position slot and trailing state are
// cleared afterwards.
func (e *Engine) exit() error {
	if e.open == nil {
		return ErrNoPosition
	}

	if err := e.broker.Cancel(e.open.stop.ID); err != nil {
		return fmt.Errorf("failed to cancel stop order: %w", err)
	}
	if err := e.broker.Cancel(e.open.target.ID); err != nil {
		return fmt.Errorf("failed to cancel target order: %w", err)
	}

	closeSide := broker.Sell
	if e.open.direction == Short {
		closeSide = broker.Buy
	}
	closing := &broker.Order{
		ID:       e.nextOrderID(),
		Side:     closeSide,
		Kind:     broker.Market,
		Quantity: 1,
		Label:    labelFlatten,
	}
	if err := e.broker.Submit(closing); err != nil {
		return fmt.Errorf("closing order rejected: %w", err)
	}

	e.open = nil
	monitoring.UpdatePosition(e.inst.Symbol, 0)
	return nil
}

// modifyStop moves the protective stop in place. The target order is
// never touched.
func (e *Engine) modifyStop(price float64, label string) error {
	if e.open == nil {
		return ErrNoPosition
	}
	if err := e.broker.Modify(e.open.stop.ID, price, label); err != nil {
		return fmt.Errorf("failed to modify stop order: %w", err)
	}
	e.open.stop.Price = price
	e.open.stop.Label = label
	return nil
}

// Flatten force-closes any open position, for the end-of-session
// directive. It is a no-op while flat.
func (e *Engine) Flatten() error {
	if e.open == nil {
		return nil
	}
	return e.exit()
}

// OnOrderFilled tells the engine one of its protective orders filled
// at the venue. The venue already cancelled the linked counterpart, so
// the engine only clears its position slot. Fills of unknown orders
// are ignored.
func (e *Engine) OnOrderFilled(orderID string) {
	if e.open == nil {
		return
	}
	if orderID == e.open.stop.ID || orderID == e.open.target.ID {
		e.open = nil
		monitoring.UpdatePosition(e.inst.Symbol, 0)
	}
}

func positionGauge(dir Direction) float64 {
	switch dir {
	case Long:
		return 1
	case Short:
		return -1
	default:
		return 0
	}
}
