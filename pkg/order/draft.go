package order

import "strings"

// Draft is the order currently being edited.
type Draft struct {
	FullName string   `json:"full_name"`
	Size     Size     `json:"size"`
	Toppings []string `json:"toppings"`
}

// Clone returns a deep copy so callers can hand drafts across goroutines.
func (d Draft) Clone() Draft {
	out := d
	if d.Toppings != nil {
		out.Toppings = append(make([]string, 0, len(d.Toppings)), d.Toppings...)
	}
	return out
}

// IsZero reports whether the draft holds no user input at all.
func (d Draft) IsZero() bool {
	return d.FullName == "" && d.Size == "" && len(d.Toppings) == 0
}

// HasTopping reports whether id is selected.
func (d Draft) HasTopping(id string) bool {
	for _, existing := range d.Toppings {
		if existing == id {
			return true
		}
	}
	return false
}

// ToggleTopping returns a copy of d with id added (selected) or removed.
// Selecting an id twice keeps a single entry and removal preserves the order
// of the remaining ids.
func (d Draft) ToggleTopping(id string, selected bool) Draft {
	out := d.Clone()
	id = strings.TrimSpace(id)
	if id == "" {
		return out
	}

	if selected {
		if !out.HasTopping(id) {
			out.Toppings = append(out.Toppings, id)
		}
		return out
	}

	if !out.HasTopping(id) {
		return out
	}
	kept := make([]string, 0, len(out.Toppings))
	for _, existing := range out.Toppings {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	out.Toppings = kept
	return out
}

// Normalized trims the name and drops blank or duplicate topping ids. It is
// used on data that did not arrive through ToggleTopping (form posts, API
// payloads).
func (d Draft) Normalized() Draft {
	out := Draft{
		FullName: strings.TrimSpace(d.FullName),
		Size:     Size(strings.TrimSpace(string(d.Size))),
	}
	for _, id := range d.Toppings {
		out = out.ToggleTopping(id, true)
	}
	return out
}
