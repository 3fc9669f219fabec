package render

import "github.com/goliatone/go-pizzaform/pkg/order"

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashFailure = "failure"
)

// Flash is the one-shot outcome message shown above the form.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// RenderOptions describe per-request data that renderers use without
// mutating the page definition.
type RenderOptions struct {
	// Values pre-populates controls keyed by field name. full_name and size
	// carry strings; toppings carries []string of selected ids.
	Values map[string]any
	// Errors surfaces validation feedback keyed by field name.
	Errors map[string][]string
	// FormErrors holds messages that do not belong to a single field.
	FormErrors []string
	// Valid drives the enabled state of the submit control.
	Valid bool
	// Flash is the latest submission outcome, if any.
	Flash *Flash
	// Hidden carries inputs such as the CSRF token.
	Hidden map[string]string
	// Theme is the resolved theme selection; nil renders unthemed.
	Theme *ThemeConfig
}

// StringValue returns Values[name] as a string.
func (o RenderOptions) StringValue(name string) string {
	switch v := o.Values[name].(type) {
	case string:
		return v
	case order.Size:
		return string(v)
	case interface{ String() string }:
		return v.String()
	default:
		return ""
	}
}

// StringsValue returns Values[name] as a string slice.
func (o RenderOptions) StringsValue(name string) []string {
	switch v := o.Values[name].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// FirstError returns the first message recorded for name.
func (o RenderOptions) FirstError(name string) string {
	if msgs := o.Errors[name]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}
