package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig is the renderer-facing view of a theme selection.
type ThemeConfig = theme.RendererConfig

// ErrThemeNotFound is returned when no registered manifest matches a theme
// name and no default theme can stand in for it.
var ErrThemeNotFound = theme.ErrThemeNotFound

// ThemeSelector wraps a go-theme registry and selector. The first
// registered manifest becomes the default theme.
type ThemeSelector struct {
	mu       sync.RWMutex
	registry *theme.MemoryRegistry
	selector theme.Selector
}

var _ theme.ThemeSelector = (*ThemeSelector)(nil)

// NewThemeSelector registers the provided manifests.
func NewThemeSelector(manifests ...*theme.Manifest) (*ThemeSelector, error) {
	registry := theme.NewRegistry()
	s := &ThemeSelector{
		registry: registry,
		selector: theme.Selector{Registry: registry},
	}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register validates and stores a manifest.
func (s *ThemeSelector) Register(manifest *theme.Manifest) error {
	if manifest == nil {
		return fmt.Errorf("render: theme manifest is required")
	}
	if err := s.registry.Register(manifest); err != nil {
		return fmt.Errorf("render: register theme %q: %w", manifest.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selector.DefaultTheme == "" {
		s.selector.DefaultTheme = manifest.Name
	}
	return nil
}

// SetDefault changes the theme and variant used when Select receives blanks.
func (s *ThemeSelector) SetDefault(name, variant string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name = strings.TrimSpace(name); name != "" {
		s.selector.DefaultTheme = name
	}
	s.selector.DefaultVariant = strings.TrimSpace(variant)
}

// Select implements theme.ThemeSelector. Unknown themes resolve to the
// default theme and unknown variants to the base manifest.
func (s *ThemeSelector) Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	selector := s.selector
	s.mu.RUnlock()

	selection, err := selector.Select(name, strings.TrimSpace(variant), opts...)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	selection.Theme = selection.Manifest.Name
	if _, ok := selection.Manifest.Variants[selection.Variant]; !ok {
		selection.Variant = ""
	}
	return selection, nil
}

// Resolve selects a theme and converts it into a renderer config.
func (s *ThemeSelector) Resolve(name, variant string) (*ThemeConfig, error) {
	selection, err := s.Select(name, variant)
	if err != nil {
		return nil, err
	}
	cfg := selection.RendererTheme(nil)
	return &cfg, nil
}

// CSSVarsStyle renders css variables as a deterministic declaration list.
func CSSVarsStyle(cfg *ThemeConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	decls := make([]string, len(keys))
	for i, key := range keys {
		decls[i] = key + ": " + cfg.CSSVars[key] + ";"
	}
	return strings.Join(decls, " ")
}

// ThemeAssetURL resolves key through cfg, returning fallback when the theme
// does not provide the asset.
func ThemeAssetURL(cfg *ThemeConfig, key, fallback string) string {
	if cfg == nil || cfg.AssetURL == nil {
		return fallback
	}
	if url := cfg.AssetURL(key); url != "" {
		return url
	}
	return fallback
}
