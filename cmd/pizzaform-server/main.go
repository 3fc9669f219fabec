package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-pizzaform/internal/app"
	"github.com/goliatone/go-pizzaform/internal/config"
)

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("config: %v", err)
	}

	logger := log.New(os.Stderr, "pizzaform ", log.LstdFlags)
	if cfg.Quiet {
		logger = log.New(io.Discard, "", 0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer a.Close()

	log.Printf("web app on %s, order api on %s (endpoint %s)", cfg.Addr, cfg.APIAddr, cfg.Endpoint)
	if err := a.Run(ctx); err != nil {
		log.Printf("server: %v", err)
		a.Close()
		os.Exit(1)
	}
}
