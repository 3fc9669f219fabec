package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pizzaform/pkg/render"
)

type stubRenderer struct {
	name        string
	contentType string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return s.contentType }
func (s stubRenderer) Render(context.Context, render.Page, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})
	registry.MustRegister(stubRenderer{name: "json", contentType: "application/json"})

	if err := registry.Register(stubRenderer{name: "json"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected error for unnamed renderer")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}

	if diff := cmp.Diff([]string{"json", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("vanilla") {
		t.Fatalf("expected vanilla renderer registered")
	}
	if _, err := registry.Get("preact"); err == nil {
		t.Fatalf("expected lookup error for missing renderer")
	}

	renderer, ok := registry.ForContentType("text/html")
	if !ok || renderer.Name() != "vanilla" {
		t.Fatalf("expected vanilla for text/html, got %v %v", renderer, ok)
	}
	if _, ok := registry.ForContentType("text/plain"); ok {
		t.Fatalf("expected no renderer for text/plain")
	}
}

func TestRenderOptionsAccessors(t *testing.T) {
	opts := render.RenderOptions{
		Values: map[string]any{
			"full_name": "Ada",
			"toppings":  []any{"1", 2, "3"},
		},
		Errors: map[string][]string{"size": {"Size is required", "other"}},
	}
	if got := opts.StringValue("full_name"); got != "Ada" {
		t.Fatalf("StringValue = %q", got)
	}
	if got := opts.StringValue("missing"); got != "" {
		t.Fatalf("StringValue missing = %q", got)
	}
	if diff := cmp.Diff([]string{"1", "3"}, opts.StringsValue("toppings")); diff != "" {
		t.Fatalf("StringsValue mismatch (-want +got):\n%s", diff)
	}
	if got := opts.FirstError("size"); got != "Size is required" {
		t.Fatalf("FirstError = %q", got)
	}
	if got := opts.FirstError("full_name"); got != "" {
		t.Fatalf("FirstError for clean field = %q", got)
	}
}
