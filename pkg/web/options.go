package web

import (
	"io/fs"
	"log"

	"github.com/goliatone/go-pizzaform/internal/session"
	"github.com/goliatone/go-pizzaform/pkg/order"
	"github.com/goliatone/go-pizzaform/pkg/render"
	"github.com/goliatone/go-pizzaform/pkg/uischema"
)

// Option configures a Server.
type Option func(*Server)

// WithSessions sets the store that binds forms to visitors.
func WithSessions(store *session.Store) Option {
	return func(s *Server) {
		s.sessions = store
	}
}

// WithRenderer registers an additional renderer. The first renderer producing
// text/html serves the pages and the first producing application/json serves
// live validation state.
func WithRenderer(renderer render.Renderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.extra = append(s.extra, renderer)
		}
	}
}

// WithUISchema overrides the embedded page copy.
func WithUISchema(store *uischema.Store) Option {
	return func(s *Server) {
		s.ui = store
	}
}

// WithThemeSelector replaces the selector holding the theme manifests.
func WithThemeSelector(selector *render.ThemeSelector) Option {
	return func(s *Server) {
		s.themes = selector
	}
}

// WithTheme picks the default theme and variant.
func WithTheme(name, variant string) Option {
	return func(s *Server) {
		s.themeName = name
		s.themeVariant = variant
	}
}

func WithCatalog(catalog order.Catalog) Option {
	return func(s *Server) {
		if len(catalog) > 0 {
			s.catalog = append(order.Catalog(nil), catalog...)
		}
	}
}

// WithAssets serves files under /assets/ from fsys.
func WithAssets(fsys fs.FS) Option {
	return func(s *Server) {
		s.assets = fsys
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}
