// Package app wires the web app and the order API for the server binary.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-pizzaform/internal/config"
	"github.com/goliatone/go-pizzaform/internal/session"
	"github.com/goliatone/go-pizzaform/internal/storage/postgres"
	"github.com/goliatone/go-pizzaform/pkg/orderapi"
	"github.com/goliatone/go-pizzaform/pkg/orderclient"
	"github.com/goliatone/go-pizzaform/pkg/orderform"
	"github.com/goliatone/go-pizzaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-pizzaform/pkg/uischema"
	"github.com/goliatone/go-pizzaform/pkg/web"
)

// App owns both HTTP servers and the resources behind them.
type App struct {
	cfg    config.Config
	logger *log.Logger

	Web *web.Server
	API *orderapi.Handler

	closers []func()
}

// New builds the app from cfg. Call Close when Run has returned.
func New(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, logger: logger}

	store, err := a.orderStore(ctx)
	if err != nil {
		return nil, err
	}

	api, err := orderapi.New(ctx,
		orderapi.WithStore(store),
		orderapi.WithLogger(logger),
		orderapi.WithAllowedOrigins(cfg.AllowedOrigins...),
	)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("app: order api: %w", err)
	}
	a.API = api

	client := orderclient.New(
		orderclient.WithEndpoint(cfg.Endpoint),
		orderclient.WithTimeout(cfg.ClientTimeout),
		orderclient.WithLogger(logger),
	)
	sessions := session.NewStore(
		func() *orderform.Form { return orderform.New(client, orderform.WithLogger(logger)) },
		session.WithTTL(cfg.SessionTTL),
		session.WithSecureCookies(cfg.SecureCookies),
		session.WithLogger(logger),
	)

	webOptions := []web.Option{
		web.WithSessions(sessions),
		web.WithTheme(cfg.Theme, cfg.Variant),
		web.WithLogger(logger),
	}
	if cfg.UISchemaDir != "" {
		ui, err := uischema.LoadFS(os.DirFS(cfg.UISchemaDir))
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("app: ui schema: %w", err)
		}
		webOptions = append(webOptions, web.WithUISchema(ui))
	}
	if cfg.TemplatesDir != "" {
		html, err := vanilla.New(vanilla.WithTemplatesDir(cfg.TemplatesDir))
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("app: templates: %w", err)
		}
		webOptions = append(webOptions, web.WithRenderer(html))
	}

	server, err := web.New(webOptions...)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("app: web: %w", err)
	}
	a.Web = server
	return a, nil
}

func (a *App) orderStore(ctx context.Context) (orderapi.Store, error) {
	if a.cfg.DatabaseURL == "" {
		a.logger.Printf("app: using in-memory order store")
		return orderapi.NewMemoryStore(), nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := postgres.Open(connectCtx, a.cfg.DatabaseURL, 0)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	a.closers = append(a.closers, pool.Close)
	return postgres.NewStore(pool), nil
}

// Close releases the database pool, if any.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Run serves the web app and the order API until ctx is cancelled, then
// shuts both down within the configured grace period.
func (a *App) Run(ctx context.Context) error {
	webLn, err := net.Listen("tcp", a.cfg.Addr)
	if err != nil {
		return fmt.Errorf("app: listen web: %w", err)
	}
	apiLn, err := net.Listen("tcp", a.cfg.APIAddr)
	if err != nil {
		webLn.Close()
		return fmt.Errorf("app: listen api: %w", err)
	}
	return a.Serve(ctx, webLn, apiLn)
}

// Serve is Run on listeners the caller already opened.
func (a *App) Serve(ctx context.Context, webLn, apiLn net.Listener) error {
	webSrv := &http.Server{Handler: a.Web.Routes(), ReadHeaderTimeout: 10 * time.Second}
	apiSrv := &http.Server{Handler: a.API.Routes(), ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Printf("app: web listening on %s", webLn.Addr())
		return serve(webSrv, webLn)
	})
	g.Go(func() error {
		a.logger.Printf("app: order api listening on %s", apiLn.Addr())
		return serve(apiSrv, apiLn)
	})
	g.Go(func() error {
		return a.Web.Sessions().Run(gctx, time.Minute)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownGrace)
		defer cancel()
		return errors.Join(
			shutdown(shutdownCtx, "web", webSrv),
			shutdown(shutdownCtx, "api", apiSrv),
		)
	})
	return g.Wait()
}

func serve(srv *http.Server, ln net.Listener) error {
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func shutdown(ctx context.Context, name string, srv *http.Server) error {
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("app: shutdown %s: %w", name, err)
	}
	return nil
}
