package template

import (
	"io"
)

// TemplateRenderer is the seam HTML renderers use to execute page templates.
// View data is a plain map; renderers build it from their own view models.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data map[string]any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data map[string]any) error
}
