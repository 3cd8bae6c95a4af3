package broker

// Side is the direction of an order.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// OrderKind distinguishes immediate from resting orders.
type OrderKind int

const (
	Market OrderKind = iota
	Stop
	Limit
)

func (k OrderKind) String() string {
	switch k {
	case Market:
		return "MARKET"
	case Stop:
		return "STOP"
	case Limit:
		return "LIMIT"
	default:
		return "UNKNOWN"
	}
}

// Order is an order request as handed to the execution venue. Price is
// meaningful for stop and limit orders only. LinkedID names the OCO
// counterpart: the venue cancels the linked order when this one fills.
// The link is declared at submission and never dereferenced afterwards.
type Order struct {
	ID       string
	Side     Side
	Kind     OrderKind
	Quantity int
	Price    float64
	Label    string
	LinkedID string
}

// Broker is the execution collaborator. Calls are synchronous and
// non-blocking; a non-nil error means the request was rejected, never
// that it is still pending. Fills of resting orders come back through
// the venue's own channel (see Sim.EvaluateBar).
type Broker interface {
	Submit(order *Order) error
	Modify(orderID string, price float64, label string) error
	Cancel(orderID string) error
}
