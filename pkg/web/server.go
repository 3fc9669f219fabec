// Package web serves the pizza order pages and the live validation endpoint.
package web

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"

	"github.com/goliatone/go-pizzaform/internal/session"
	"github.com/goliatone/go-pizzaform/pkg/order"
	"github.com/goliatone/go-pizzaform/pkg/orderapi"
	"github.com/goliatone/go-pizzaform/pkg/render"
	"github.com/goliatone/go-pizzaform/pkg/renderers/jsonview"
	"github.com/goliatone/go-pizzaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-pizzaform/pkg/uischema"
)

// CSRFHeader carries the session token on live validation requests.
const CSRFHeader = "X-CSRF-Token"

const maxFormBytes = 64 << 10

const (
	mediaHTML = "text/html"
	mediaJSON = "application/json"
)

// Server renders the home and order views for each visitor session.
type Server struct {
	sessions     *session.Store
	renderers    *render.Registry
	extra        []render.Renderer
	ui           *uischema.Store
	themes       *render.ThemeSelector
	themeName    string
	themeVariant string
	catalog      order.Catalog
	assets       fs.FS
	logger       *log.Logger
}

// New builds a server. Without WithSessions, forms have no submitter and every
// submission fails.
func New(options ...Option) (*Server, error) {
	s := &Server{
		catalog: order.DefaultCatalog(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	if s.sessions == nil {
		s.sessions = session.NewStore(nil)
	}
	if s.assets == nil {
		s.assets = vanilla.AssetsFS()
	}
	if s.ui == nil {
		store, err := uischema.Default()
		if err != nil {
			return nil, fmt.Errorf("web: load ui schema: %w", err)
		}
		s.ui = store
	}
	if s.themes == nil {
		selector, err := render.NewThemeSelector(vanilla.DefaultTheme())
		if err != nil {
			return nil, fmt.Errorf("web: theme selector: %w", err)
		}
		s.themes = selector
	}
	if _, err := s.themes.Resolve(s.themeName, s.themeVariant); err != nil {
		return nil, fmt.Errorf("web: resolve theme: %w", err)
	}

	s.renderers = render.NewRegistry()
	for _, renderer := range s.extra {
		if err := s.renderers.Register(renderer); err != nil {
			return nil, fmt.Errorf("web: %w", err)
		}
	}
	if _, ok := s.renderers.ForContentType(mediaHTML); !ok {
		html, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("web: %w", err)
		}
		if err := s.renderers.Register(html); err != nil {
			return nil, fmt.Errorf("web: %w", err)
		}
	}
	if _, ok := s.renderers.ForContentType(mediaJSON); !ok {
		if err := s.renderers.Register(jsonview.New()); err != nil {
			return nil, fmt.Errorf("web: %w", err)
		}
	}
	return s, nil
}

// Routes returns the web app handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /order", s.handleOrder)
	mux.HandleFunc("POST /order", s.handleSubmit)
	mux.HandleFunc("POST /order/draft", s.handleDraft)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(s.assets)))
	mux.HandleFunc("GET /healthz", orderapi.HealthHandler)
	return orderapi.RequestLogger(mux, s.logger)
}

// Sessions exposes the session store, for sweeping in the server binary.
func (s *Server) Sessions() *session.Store {
	return s.sessions
}

func (s *Server) page(name string) render.Page {
	return render.Page{
		Name:    name,
		UI:      s.ui.PageOrDefault(name),
		Nav:     s.ui.Nav(),
		Catalog: s.catalog,
	}
}

// themeFor honours a ?variant= override; unknown variants fall back to the
// base manifest.
func (s *Server) themeFor(r *http.Request) *render.ThemeConfig {
	variant := s.themeVariant
	if v := r.URL.Query().Get("variant"); v != "" {
		variant = v
	}
	cfg, err := s.themes.Resolve(s.themeName, variant)
	if err != nil {
		s.logger.Printf("web: resolve theme: %v", err)
		return nil
	}
	return cfg
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, mediaType, pageName string, status int, options render.RenderOptions) {
	renderer, ok := s.renderers.ForContentType(mediaType)
	if !ok {
		s.logger.Printf("web: no renderer for %s", mediaType)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	body, err := renderer.Render(r.Context(), s.page(pageName), options)
	if err != nil {
		s.logger.Printf("web: render %s with %s: %v", pageName, renderer.Name(), err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		s.logger.Printf("web: write response: %v", err)
	}
}
