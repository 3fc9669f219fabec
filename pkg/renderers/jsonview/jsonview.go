// Package jsonview renders form state as JSON for the live-validation
// endpoint and API-style consumers.
package jsonview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-pizzaform/pkg/order"
	"github.com/goliatone/go-pizzaform/pkg/render"
)

// Name is the registry key of the JSON renderer.
const Name = "json"

// State is the document written by Render.
type State struct {
	Page       string              `json:"page"`
	Values     Values              `json:"values"`
	Errors     map[string][]string `json:"errors"`
	FormErrors []string            `json:"form_errors,omitempty"`
	Valid      bool                `json:"valid"`
	Flash      *render.Flash       `json:"flash,omitempty"`
}

// Values mirrors the order draft wire shape.
type Values struct {
	FullName string   `json:"full_name"`
	Size     string   `json:"size"`
	Toppings []string `json:"toppings"`
}

type Option func(*Renderer)

// WithIndent pretty-prints the output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(_ context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	state := Build(page, options)

	var (
		payload []byte
		err     error
	)
	if r.indent != "" {
		payload, err = json.MarshalIndent(state, "", r.indent)
	} else {
		payload, err = json.Marshal(state)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonview: marshal state: %w", err)
	}
	return payload, nil
}

// Build converts render options into the JSON document. Errors and toppings
// are never null so clients can index them directly.
func Build(page render.Page, options render.RenderOptions) State {
	toppings := options.StringsValue(order.FieldToppings)
	if toppings == nil {
		toppings = []string{}
	}
	errs := make(map[string][]string, len(options.Errors))
	for field, messages := range options.Errors {
		if len(messages) == 0 {
			continue
		}
		errs[field] = append([]string(nil), messages...)
	}

	return State{
		Page: page.Name,
		Values: Values{
			FullName: options.StringValue(order.FieldFullName),
			Size:     options.StringValue(order.FieldSize),
			Toppings: toppings,
		},
		Errors:     errs,
		FormErrors: render.MergeFormErrors(nil, options.FormErrors...),
		Valid:      options.Valid,
		Flash:      options.Flash,
	}
}
