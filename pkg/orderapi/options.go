package orderapi

import (
	"log"
	"time"

	"github.com/goliatone/go-pizzaform/pkg/order"
)

// Option configures a Handler.
type Option func(*Handler)

// WithStore sets where accepted orders are persisted.
func WithStore(store Store) Option {
	return func(h *Handler) {
		if store != nil {
			h.store = store
		}
	}
}

// WithMetrics shares a metrics set between handlers.
func WithMetrics(metrics *Metrics) Option {
	return func(h *Handler) {
		h.metrics = metrics
	}
}

// WithCatalog restricts accepted toppings.
func WithCatalog(catalog order.Catalog) Option {
	return func(h *Handler) {
		if len(catalog) > 0 {
			h.catalog = append(order.Catalog(nil), catalog...)
		}
	}
}

// WithLogger sets the request and error logger.
func WithLogger(logger *log.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithAllowedOrigins enables CORS for the listed origins ("*" for any).
func WithAllowedOrigins(origins ...string) Option {
	return func(h *Handler) {
		h.allowedOrigins = append(h.allowedOrigins, origins...)
	}
}

// WithClock overrides the time source used for created_at.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithIDGenerator overrides how order ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(h *Handler) {
		if fn != nil {
			h.newID = fn
		}
	}
}
