package orderform

import (
	"log"

	"github.com/goliatone/go-pizzaform/pkg/order"
)

// Option configures a Form before construction.
type Option func(*config)

type config struct {
	catalog order.Catalog
	draft   order.Draft
	logger  *log.Logger
}

// WithCatalog overrides the topping catalog. Empty catalogs are ignored.
func WithCatalog(catalog order.Catalog) Option {
	return func(cfg *config) {
		if len(catalog) == 0 {
			return
		}
		cfg.catalog = append(order.Catalog(nil), catalog...)
	}
}

// WithDraft seeds the form with an initial draft.
func WithDraft(draft order.Draft) Option {
	return func(cfg *config) {
		cfg.draft = draft
	}
}

// WithLogger routes submission logs to logger.
func WithLogger(logger *log.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}
