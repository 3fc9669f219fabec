package uischema

import "strings"

// Page names used by the web app.
const (
	PageHome  = "home"
	PageOrder = "order"
)

// Store keeps the parsed pages and navigation. It is safe for concurrent
// readers when treated as immutable after construction.
type Store struct {
	pages map[string]Page
	nav   []Link
}

// Page describes the copy rendered around a view.
type Page struct {
	ID       string                 `json:"id"`
	Source   string                 `json:"-"`
	Title    string                 `json:"title" yaml:"title"`
	Subtitle string                 `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Icon     string                 `json:"icon,omitempty" yaml:"icon,omitempty"`
	Fields   map[string]FieldConfig `json:"fields,omitempty" yaml:"fields,omitempty"`
	Actions  []ActionConfig         `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// FieldConfig customises how a single form field is labelled.
type FieldConfig struct {
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText    string `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	CSSClass    string `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
}

// ActionConfig serialises call-to-action buttons and links.
type ActionConfig struct {
	Kind  string `json:"kind" yaml:"kind"`
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href,omitempty" yaml:"href,omitempty"`
}

// Link is a navigation entry.
type Link struct {
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href" yaml:"href"`
}

// Field returns the configuration for name, falling back to a label derived
// from the field name.
func (p Page) Field(name string) FieldConfig {
	if cfg, ok := p.Fields[name]; ok {
		if cfg.Label == "" {
			cfg.Label = humanize(name)
		}
		return cfg
	}
	return FieldConfig{Label: humanize(name)}
}

// Action returns the first action of kind.
func (p Page) Action(kind string) (ActionConfig, bool) {
	for _, action := range p.Actions {
		if strings.EqualFold(action.Kind, kind) {
			return action, true
		}
	}
	return ActionConfig{}, false
}

func humanize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
