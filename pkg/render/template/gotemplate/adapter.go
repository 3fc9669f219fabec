// Package gotemplate runs pizza form page templates on pongo2.
package gotemplate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-pizzaform/pkg/order"
	"github.com/goliatone/go-pizzaform/pkg/render/template"
)

const setName = "pizzaform"

// Option tweaks an Engine.
type Option func(*Engine)

// WithExtension sets the suffix appended to template names that lack it.
// Defaults to ".tmpl".
func WithExtension(ext string) Option {
	return func(e *Engine) {
		if ext = strings.TrimSpace(ext); ext != "" {
			e.ext = "." + strings.TrimPrefix(ext, ".")
		}
	}
}

// Engine loads page templates from an fs.FS and caches them after the first
// render. Templates can use the size_label and topping_summary filters.
type Engine struct {
	mu    sync.RWMutex
	set   *pongo2.TemplateSet
	cache map[string]*pongo2.Template
	ext   string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine over files.
func New(files fs.FS, options ...Option) (*Engine, error) {
	if files == nil {
		return nil, errors.New("gotemplate: template fs is required")
	}
	e := &Engine{
		set:   pongo2.NewSet(setName, pongo2.NewFSLoader(files)),
		cache: make(map[string]*pongo2.Template),
		ext:   ".tmpl",
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	registerOrderFilters()
	return e, nil
}

// RenderTemplate executes the named template, copying the output to every
// writer in out.
func (e *Engine) RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error) {
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.execute(tpl, name, data, out)
}

// RenderString parses and executes an inline template.
func (e *Engine) RenderString(content string, data map[string]any, out ...io.Writer) (string, error) {
	tpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.execute(tpl, "inline", data, out)
}

// RegisterFilter adds a filter. pongo2 keeps filters process-wide, so a name
// can only be registered once.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values visible to every template.
func (e *Engine) GlobalContext(data map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(pongo2.Context(data))
	return nil
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tpl, ok := e.cache[name]
	e.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tpl, ok := e.cache[name]; ok {
		return tpl, nil
	}
	tpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", name, err)
	}
	e.cache[name] = tpl
	return tpl, nil
}

func (e *Engine) execute(tpl *pongo2.Template, name string, data map[string]any, out []io.Writer) (string, error) {
	e.mu.RLock()
	rendered, err := tpl.Execute(pongo2.Context(data))
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", name, err)
	}
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func registerOrderFilters() {
	filters := map[string]pongo2.FilterFunction{
		"size_label":      filterSizeLabel,
		"topping_summary": filterToppingSummary,
	}
	for name, fn := range filters {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

// filterSizeLabel turns a size code into its lower-case label ("M" -> "medium").
func filterSizeLabel(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(order.Size(strings.TrimSpace(in.String())).Label()), nil
}

// filterToppingSummary accepts either a count or a list of toppings.
func filterToppingSummary(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	count := 0
	switch {
	case in.IsNil():
	case in.IsNumber():
		count = in.Integer()
	case in.CanSlice():
		count = in.Len()
	}
	return pongo2.AsValue(order.ToppingSummary(count)), nil
}
