package render

import (
	"sort"
	"strings"
)

// CSRFFieldName is the input name the web server reads the CSRF token from.
const CSRFFieldName = "_csrf"

// HiddenField is a hidden input rendered next to the order controls.
type HiddenField struct {
	Name  string
	Value string
}

// CSRFHidden returns the hidden inputs carrying a session's CSRF token.
func CSRFHidden(token string) map[string]string {
	if token == "" {
		return nil
	}
	return map[string]string{CSRFFieldName: token}
}

// SortedHiddenFields lists hidden inputs by name so pages render the same
// markup on every request. Blank names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	var out []HiddenField
	for name, value := range fields {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, HiddenField{Name: name, Value: value})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
