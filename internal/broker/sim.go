package broker

import (
	"fmt"
	"time"

	"github.com/quantbed/stochtrail/internal/monitoring"
	"github.com/quantbed/stochtrail/pkg/types"
)

// Fill reports an executed order back to the driver.
type Fill struct {
	Order Order
	Price float64
	Time  time.Time
}

// Sim is a bar-synchronous simulated venue. Market orders fill
// immediately at the current mark price; stop and limit orders rest
// until a bar's range reaches them. Mutually linked orders are
// one-cancels-other: the fill of either removes its counterpart.
type Sim struct {
	symbol   string
	working  map[string]*Order
	fills    []Fill
	mark     float64
	markTime time.Time
}

// NewSim creates an empty simulated venue for one instrument.
func NewSim(symbol string) *Sim {
	return &Sim{
		symbol:  symbol,
		working: make(map[string]*Order),
	}
}

// SetMark updates the price market orders fill at. The driver calls it
// once per bar with the bar's close before the engine's decision pass.
func (s *Sim) SetMark(price float64, at time.Time) {
	s.mark = price
	s.markTime = at
}

// Submit accepts an order request. Market orders execute at the mark
// price in the same call; stop and limit orders join the working set.
func (s *Sim) Submit(order *Order) error {
	if order.ID == "" {
		return fmt.Errorf("order has no ID")
	}
	if order.Quantity != 1 {
		return fmt.Errorf("only single-contract orders are supported, got quantity %d", order.Quantity)
	}
	if _, exists := s.working[order.ID]; exists {
		return fmt.Errorf("duplicate order ID %s", order.ID)
	}

	monitoring.RecordOrder(s.symbol, order.Kind.String(), order.Side.String())

	if order.Kind == Market {
		s.fills = append(s.fills, Fill{Order: *order, Price: s.mark, Time: s.markTime})
		return nil
	}

	if order.Price <= 0 {
		return fmt.Errorf("%s order %s requires a price", order.Kind, order.ID)
	}
	copied := *order
	s.working[order.ID] = &copied
	return nil
}

// Modify updates a working order's price and label in place.
func (s *Sim) Modify(orderID string, price float64, label string) error {
	order, ok := s.working[orderID]
	if !ok {
		return fmt.Errorf("unknown order ID %s", orderID)
	}
	order.Price = price
	order.Label = label
	monitoring.RecordOrderModification(s.symbol)
	return nil
}

// Cancel removes a working order.
func (s *Sim) Cancel(orderID string) error {
	if _, ok := s.working[orderID]; !ok {
		return fmt.Errorf("unknown order ID %s", orderID)
	}
	delete(s.working, orderID)
	return nil
}

// EvaluateBar fills any working order the bar's range reaches, honoring
// OCO links. When one bar touches both a stop and its linked limit the
// stop fills first (conservative assumption). Fills queue up until the
// driver drains them with TakeFills.
func (s *Sim) EvaluateBar(bar types.OHLCV) {
	// Stops first, then limits, so a bar spanning both resolves to the
	// adverse exit.
	for _, kind := range []OrderKind{Stop, Limit} {
		for id, order := range s.working {
			if order.Kind != kind || !s.reached(order, bar) {
				continue
			}
			s.fills = append(s.fills, Fill{Order: *order, Price: order.Price, Time: bar.Timestamp})
			delete(s.working, id)
			if order.LinkedID != "" {
				delete(s.working, order.LinkedID)
			}
		}
	}
}

// TakeFills drains and returns the queued fills in execution order.
func (s *Sim) TakeFills() []Fill {
	fills := s.fills
	s.fills = nil
	return fills
}

// reached reports whether the bar's range touches the order's price.
func (s *Sim) reached(order *Order, bar types.OHLCV) bool {
	switch order.Kind {
	case Stop:
		if order.Side == Sell {
			return bar.Low <= order.Price
		}
		return bar.High >= order.Price
	case Limit:
		if order.Side == Sell {
			return bar.High >= order.Price
		}
		return bar.Low <= order.Price
	default:
		return false
	}
}

// WorkingOrders returns a snapshot of the resting orders, for tests and
// reporting.
func (s *Sim) WorkingOrders() []Order {
	orders := make([]Order, 0, len(s.working))
	for _, order := range s.working {
		orders = append(orders, *order)
	}
	return orders
}
