package render

import (
	"context"

	"github.com/goliatone/go-pizzaform/pkg/order"
	"github.com/goliatone/go-pizzaform/pkg/uischema"
)

// Page names understood by the bundled renderers.
const (
	PageHome  = uischema.PageHome
	PageOrder = uischema.PageOrder
)

// Page identifies the view being rendered together with the static data it
// needs. Per-request state travels in RenderOptions.
type Page struct {
	Name    string
	UI      uischema.Page
	Nav     []uischema.Link
	Catalog order.Catalog
}

// Renderer converts a Page into a byte representation (HTML, JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, options RenderOptions) ([]byte, error)
}
