package uischema

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

// sanitizeIconMarkup keeps inline SVG shapes and drops everything else,
// including scripts, event handlers and foreign elements.
func sanitizeIconMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(trimmed))
}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		shapes := []string{"path", "circle", "rect", "ellipse", "polygon", "line"}

		policy.AllowElements(append([]string{"svg", "g", "title"}, shapes...)...)
		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "aria-hidden", "role", "class",
		).OnElements("svg")
		policy.AllowAttrs("fill", "stroke", "class").OnElements("g")
		policy.AllowAttrs(
			"d", "cx", "cy", "r", "rx", "ry", "x", "y", "x1", "y1", "x2", "y2",
			"points", "width", "height", "fill", "stroke", "stroke-width", "class",
		).OnElements(shapes...)

		iconPolicy = policy
	})
	return iconPolicy
}
