package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Order flow metrics
	ordersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stochtrail_orders_total",
			Help: "Total number of order requests submitted to the venue",
		},
		[]string{"symbol", "kind", "side"},
	)

	orderModificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stochtrail_order_modifications_total",
			Help: "Total number of order modify requests (trailing stop moves)",
		},
		[]string{"symbol"},
	)

	tradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stochtrail_trades_total",
			Help: "Total number of completed round-trip trades",
		},
		[]string{"symbol", "direction"},
	)

	// Market data metrics
	currentPrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stochtrail_current_price",
			Help: "Close price of the most recent bar",
		},
		[]string{"symbol"},
	)

	// Engine state metrics
	positionState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stochtrail_position",
			Help: "Current position: 1 long, -1 short, 0 flat",
		},
		[]string{"symbol"},
	)
)

func init() {
	prometheus.MustRegister(ordersTotal)
	prometheus.MustRegister(orderModificationsTotal)
	prometheus.MustRegister(tradesTotal)
	prometheus.MustRegister(currentPrice)
	prometheus.MustRegister(positionState)
}

// MetricsHandler handles the Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordOrder records a submitted order request
func RecordOrder(symbol, kind, side string) {
	ordersTotal.WithLabelValues(symbol, kind, side).Inc()
}

// RecordOrderModification records a modify-order request
func RecordOrderModification(symbol string) {
	orderModificationsTotal.WithLabelValues(symbol).Inc()
}

// RecordTrade records a completed round-trip trade
func RecordTrade(symbol, direction string) {
	tradesTotal.WithLabelValues(symbol, direction).Inc()
}

// UpdatePrice updates the current price gauge
func UpdatePrice(symbol string, price float64) {
	currentPrice.WithLabelValues(symbol).Set(price)
}

// UpdatePosition updates the position gauge
func UpdatePosition(symbol string, state float64) {
	positionState.WithLabelValues(symbol).Set(state)
}
