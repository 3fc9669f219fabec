// Package pizzaform exposes convenience constructors over the order form,
// its HTTP client and the HTML renderer.
package pizzaform

import (
	"context"

	"github.com/goliatone/go-pizzaform/pkg/order"
	"github.com/goliatone/go-pizzaform/pkg/orderapi"
	"github.com/goliatone/go-pizzaform/pkg/orderclient"
	"github.com/goliatone/go-pizzaform/pkg/orderform"
	"github.com/goliatone/go-pizzaform/pkg/render"
	"github.com/goliatone/go-pizzaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-pizzaform/pkg/uischema"
)

// Draft is the order being edited.
type Draft = order.Draft

// RenderOptions describes per-request values, errors and flash messages
// passed to renderers.
type RenderOptions = render.RenderOptions

// NewForm returns a form that submits to endpoint (the local order API when
// empty).
func NewForm(endpoint string, options ...orderform.Option) *orderform.Form {
	client := orderclient.New(orderclient.WithEndpoint(endpoint))
	return orderform.New(client, options...)
}

// NewOrderAPI builds the order endpoint handler.
func NewOrderAPI(ctx context.Context, options ...orderapi.Option) (*orderapi.Handler, error) {
	return orderapi.New(ctx, options...)
}

// RenderOrderHTML renders the order page for draft with the embedded templates
// and copy, including inline validation errors. It is the simplest entry point
// for callers that just want HTML output.
func RenderOrderHTML(ctx context.Context, draft Draft, options ...vanilla.Option) ([]byte, error) {
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, err
	}
	ui, err := uischema.Default()
	if err != nil {
		return nil, err
	}
	result := order.Validate(draft)
	return renderer.Render(ctx, render.Page{
		Name:    render.PageOrder,
		UI:      ui.PageOrDefault(uischema.PageOrder),
		Nav:     ui.Nav(),
		Catalog: order.DefaultCatalog(),
	}, render.RenderOptions{
		Values: map[string]any{
			order.FieldFullName: draft.FullName,
			order.FieldSize:     string(draft.Size),
			order.FieldToppings: draft.Toppings,
		},
		Errors: result.Messages(),
		Valid:  result.Valid(),
	})
}
