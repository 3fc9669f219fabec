package vanilla

import (
	"github.com/goliatone/go-pizzaform/pkg/order"
	"github.com/goliatone/go-pizzaform/pkg/render"
	"github.com/goliatone/go-pizzaform/pkg/uischema"
)

// View data is built from plain maps, slices, strings and bools so the
// templates never reach into domain types.

func (r *Renderer) baseView(page render.Page, options render.RenderOptions) map[string]any {
	nav := make([]map[string]any, 0, len(page.Nav))
	for _, link := range page.Nav {
		nav = append(nav, map[string]any{
			"label":  link.Label,
			"href":   link.Href,
			"active": isActiveLink(page.Name, link),
		})
	}

	themeName, themeVariant := "", ""
	if options.Theme != nil {
		themeName, themeVariant = options.Theme.Theme, options.Theme.Variant
	}

	return map[string]any{
		"page": map[string]any{
			"name":     page.Name,
			"title":    page.UI.Title,
			"subtitle": page.UI.Subtitle,
			"icon":     page.UI.Icon,
		},
		"nav": nav,
		"theme": map[string]any{
			"name":     themeName,
			"variant":  themeVariant,
			"css_vars": render.CSSVarsStyle(options.Theme),
		},
		"assets": map[string]any{
			"stylesheet": render.ThemeAssetURL(options.Theme, "stylesheet", joinURL(r.cfg.assetsPrefix, StylesheetName)),
			"script":     render.ThemeAssetURL(options.Theme, "script", joinURL(r.cfg.assetsPrefix, RuntimeScriptName)),
		},
		"classes": chromeClasses(),
	}
}

func (r *Renderer) homeView(page render.Page, options render.RenderOptions) map[string]any {
	data := r.baseView(page, options)

	action, ok := page.UI.Action("link")
	if !ok {
		action = uischema.ActionConfig{Kind: "link", Label: "Order", Href: r.cfg.formAction}
	}
	data["home_action"] = map[string]any{
		"label": action.Label,
		"href":  action.Href,
	}
	return data
}

func (r *Renderer) orderView(page render.Page, options render.RenderOptions) map[string]any {
	data := r.baseView(page, options)

	catalog := page.Catalog
	if len(catalog) == 0 {
		catalog = order.DefaultCatalog()
	}

	size := options.StringValue(order.FieldSize)
	sizeOptions := make([]map[string]any, 0, len(order.Sizes()))
	for _, s := range order.Sizes() {
		sizeOptions = append(sizeOptions, map[string]any{
			"value":    string(s),
			"label":    s.Title(),
			"selected": string(s) == size,
		})
	}

	selected := options.StringsValue(order.FieldToppings)
	toppingOptions := make([]map[string]any, 0, len(catalog))
	for _, topping := range catalog {
		toppingOptions = append(toppingOptions, map[string]any{
			"value":   topping.ID,
			"label":   topping.Text,
			"checked": contains(selected, topping.ID),
		})
	}

	fullName := fieldView(page.UI, order.FieldFullName, options)
	fullName["value"] = options.StringValue(order.FieldFullName)
	sizeField := fieldView(page.UI, order.FieldSize, options)
	sizeField["options"] = sizeOptions
	toppings := fieldView(page.UI, order.FieldToppings, options)
	toppings["options"] = toppingOptions

	data["fields"] = map[string]any{
		order.FieldFullName: fullName,
		order.FieldSize:     sizeField,
		order.FieldToppings: toppings,
	}

	submitLabel := "Submit"
	if action, ok := page.UI.Action("submit"); ok && action.Label != "" {
		submitLabel = action.Label
	}
	data["submit"] = map[string]any{
		"label":    submitLabel,
		"disabled": !options.Valid,
	}

	hidden := make([]map[string]any, 0, len(options.Hidden))
	for _, field := range render.SortedHiddenFields(options.Hidden) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}
	data["hidden"] = hidden
	data["form_errors"] = render.MergeFormErrors(nil, options.FormErrors...)
	data["action"] = r.cfg.formAction
	data["draft_endpoint"] = r.cfg.draftEndpoint

	if options.Flash != nil && options.Flash.Message != "" {
		data["flash"] = map[string]any{
			"kind":    options.Flash.Kind,
			"message": options.Flash.Message,
		}
	}
	return data
}

func fieldView(page uischema.Page, name string, options render.RenderOptions) map[string]any {
	cfg := page.Field(name)
	message := options.FirstError(name)
	return map[string]any{
		"id":          controlID(name),
		"name":        name,
		"label":       cfg.Label,
		"placeholder": cfg.Placeholder,
		"help":        cfg.HelpText,
		"class":       sanitizeClassList(cfg.CSSClass),
		"error":       message,
		"invalid":     message != "",
	}
}

func isActiveLink(pageName string, link uischema.Link) bool {
	switch pageName {
	case render.PageHome:
		return link.Href == "/"
	default:
		return link.Href == "/"+pageName
	}
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
