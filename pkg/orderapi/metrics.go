package orderapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values for pizzaform_orders_total.
const (
	outcomeAccepted     = "accepted"
	outcomeMalformed    = "malformed"
	outcomeInvalid      = "invalid"
	outcomeStoreFailure = "store_failure"
	outcomeUnsupported  = "unsupported_media_type"
)

// Metrics holds the order API collectors on a private registry so several
// handlers (and tests) can coexist in one process.
type Metrics struct {
	registry  *prometheus.Registry
	Orders    *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pizzaform",
		Name:      "orders_total",
		Help:      "Order submissions by outcome.",
	}, []string{"outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pizzaform",
		Name:      "order_request_duration_ms",
		Help:      "Order API request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"route", "status"})

	registry.MustRegister(orders, latency)
	return &Metrics{registry: registry, Orders: orders, LatencyMS: latency}
}

// Handler exposes the collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) countOrder(outcome string) {
	if m == nil {
		return
	}
	m.Orders.WithLabelValues(outcome).Inc()
}
