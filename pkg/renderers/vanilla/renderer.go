package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-pizzaform/pkg/render"
	rendertemplate "github.com/goliatone/go-pizzaform/pkg/render/template"
	gotemplate "github.com/goliatone/go-pizzaform/pkg/render/template/gotemplate"
)

// Name is the registry key of the HTML renderer.
const Name = "vanilla"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	assetsPrefix     string
	formAction       string
	draftEndpoint    string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAssetsPrefix sets the URL prefix the embedded assets are served under
// when the theme does not provide its own URLs.
func WithAssetsPrefix(prefix string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			cfg.assetsPrefix = trimmed
		}
	}
}

// WithFormAction overrides the URL the order form posts to.
func WithFormAction(action string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(action); trimmed != "" {
			cfg.formAction = trimmed
		}
	}
}

// WithDraftEndpoint overrides the URL the live-validation script posts field
// changes to.
func WithDraftEndpoint(endpoint string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			cfg.draftEndpoint = trimmed
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	cfg       config
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:    TemplatesFS(),
		assetsPrefix:  "/assets",
		formAction:    "/order",
		draftEndpoint: "/order/draft",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(cfg.templateFS, gotemplate.WithExtension(".tmpl"))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, cfg: cfg}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes the template named after the page (home.tmpl, order.tmpl).
func (r *Renderer) Render(_ context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	var data map[string]any
	switch page.Name {
	case render.PageHome:
		data = r.homeView(page, options)
	case render.PageOrder:
		data = r.orderView(page, options)
	default:
		return nil, fmt.Errorf("vanilla renderer: unknown page %q", page.Name)
	}

	result, err := r.templates.RenderTemplate(page.Name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
