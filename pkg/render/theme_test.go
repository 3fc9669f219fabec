package render_test

import (
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pizzaform/pkg/render"
)

func bloomManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "bloom",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":   "#d9480f",
			"surface": "#ffffff",
		},
		Templates: map[string]string{
			"layout": "layout.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"stylesheet": "pizzaform.css",
				"script":     "pizzaform.js",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface": "#1f1f1f",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"stylesheet": "pizzaform.dark.css",
					},
				},
			},
		},
	}
}

func TestThemeSelectorResolve(t *testing.T) {
	selector, err := render.NewThemeSelector(bloomManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	cfg, err := selector.Resolve("", "dark")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Theme != "bloom" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}

	wantVars := map[string]string{
		"--brand":   "#d9480f",
		"--surface": "#1f1f1f",
	}
	if diff := cmp.Diff(wantVars, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/pizzaform.dark.css" {
		t.Fatalf("stylesheet url = %q", got)
	}
	if got := cfg.AssetURL("script"); got != "/assets/pizzaform.js" {
		t.Fatalf("script url = %q", got)
	}
	if got := render.ThemeAssetURL(cfg, "favicon", "/favicon.ico"); got != "/favicon.ico" {
		t.Fatalf("fallback url = %q", got)
	}
	if got := render.CSSVarsStyle(cfg); got != "--brand: #d9480f; --surface: #1f1f1f;" {
		t.Fatalf("css vars style = %q", got)
	}
}

func TestThemeSelectorUnknownVariantFallsBack(t *testing.T) {
	selector, err := render.NewThemeSelector(bloomManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	cfg, err := selector.Resolve("bloom", "neon")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Variant != "" {
		t.Fatalf("expected base variant, got %q", cfg.Variant)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/pizzaform.css" {
		t.Fatalf("stylesheet url = %q", got)
	}
	if got := cfg.CSSVars["--surface"]; got != "#ffffff" {
		t.Fatalf("surface = %q", got)
	}
}

func TestThemeSelectorDefaults(t *testing.T) {
	second := bloomManifest()
	second.Name = "crust"
	second.Tokens = map[string]string{"brand": "#5c940d"}

	selector, err := render.NewThemeSelector(bloomManifest(), second)
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	tests := []struct {
		name        string
		setTheme    string
		setVariant  string
		theme       string
		variant     string
		wantTheme   string
		wantVariant string
	}{
		{name: "first registered is default", wantTheme: "bloom"},
		{name: "unknown theme uses default", theme: "acme", wantTheme: "bloom"},
		{name: "explicit theme", theme: "crust", variant: "dark", wantTheme: "crust", wantVariant: "dark"},
		{name: "changed defaults", setTheme: "crust", setVariant: "dark", wantTheme: "crust", wantVariant: "dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setTheme != "" {
				selector.SetDefault(tt.setTheme, tt.setVariant)
			}
			selection, err := selector.Select(tt.theme, tt.variant)
			if err != nil {
				t.Fatalf("select: %v", err)
			}
			if selection.Theme != tt.wantTheme || selection.Variant != tt.wantVariant {
				t.Fatalf("selection = %s/%s, want %s/%s", selection.Theme, selection.Variant, tt.wantTheme, tt.wantVariant)
			}
		})
	}
}

func TestThemeSelectorUnknownTheme(t *testing.T) {
	selector, err := render.NewThemeSelector()
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	if _, err := selector.Select("acme", ""); !errors.Is(err, render.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if _, err := render.NewThemeSelector(&theme.Manifest{}); err == nil {
		t.Fatalf("expected error for invalid manifest")
	}
}

func TestThemeHelpersNilConfig(t *testing.T) {
	if got := render.CSSVarsStyle(nil); got != "" {
		t.Fatalf("expected empty style, got %q", got)
	}
	if got := render.ThemeAssetURL(nil, "stylesheet", "/assets/pizzaform.css"); got != "/assets/pizzaform.css" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
