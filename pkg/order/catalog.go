package order

import "strings"

// Topping is a selectable catalog entry. IDs are stable and travel over the
// wire; Text is the display name.
type Topping struct {
	ID   string `json:"topping_id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Catalog is an ordered list of toppings.
type Catalog []Topping

var defaultCatalog = Catalog{
	{ID: "1", Text: "Pepperoni"},
	{ID: "2", Text: "Green Peppers"},
	{ID: "3", Text: "Pineapple"},
	{ID: "4", Text: "Mushrooms"},
	{ID: "5", Text: "Ham"},
}

// DefaultCatalog returns a copy of the built-in five topping catalog.
func DefaultCatalog() Catalog {
	return append(Catalog(nil), defaultCatalog...)
}

// Lookup returns the topping registered under id.
func (c Catalog) Lookup(id string) (Topping, bool) {
	id = strings.TrimSpace(id)
	for _, topping := range c {
		if topping.ID == id {
			return topping, true
		}
	}
	return Topping{}, false
}

// Has reports whether id belongs to the catalog.
func (c Catalog) Has(id string) bool {
	_, ok := c.Lookup(id)
	return ok
}

// Names maps ids to display names, preserving order. Unknown ids are
// returned as-is so callers never lose a selection.
func (c Catalog) Names(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if topping, ok := c.Lookup(id); ok {
			out = append(out, topping.Text)
			continue
		}
		out = append(out, id)
	}
	return out
}

// Unknown lists ids that are not part of the catalog, in input order.
func (c Catalog) Unknown(ids []string) []string {
	var out []string
	for _, id := range ids {
		if !c.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
