package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-pizzaform/pkg/orderclient"
	"github.com/goliatone/go-pizzaform/pkg/orderform"
	"github.com/goliatone/go-pizzaform/pkg/renderers/tui"
	"github.com/goliatone/go-pizzaform/pkg/uischema"
)

func main() {
	endpoint := flag.String("endpoint", orderclient.DefaultEndpoint, "order endpoint URL")
	timeout := flag.Duration("timeout", 10*time.Second, "submission timeout")
	attempts := flag.Int("attempts", 3, "maximum submission attempts")
	verbose := flag.Bool("v", false, "log submissions to stderr")
	flag.Parse()

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "pizzaform-cli ", log.LstdFlags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := orderclient.New(
		orderclient.WithEndpoint(*endpoint),
		orderclient.WithTimeout(*timeout),
		orderclient.WithLogger(logger),
	)
	form := orderform.New(client, orderform.WithLogger(logger))

	page := uischema.MustDefault().PageOrDefault(uischema.PageOrder)
	session, err := tui.NewSession(form,
		tui.WithPage(page),
		tui.WithMaxAttempts(*attempts),
		tui.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("tui: %v", err)
	}

	outcome, err := session.Run(ctx)
	switch {
	case err == nil:
	case errors.Is(err, tui.ErrAborted), errors.Is(err, tui.ErrCancelled):
		fmt.Fprintln(os.Stderr, "Order cancelled.")
		os.Exit(130)
	default:
		fmt.Fprintf(os.Stderr, "%s: %v\n", orderform.FailureMessage, err)
		os.Exit(1)
	}
	if outcome.Status != orderform.StatusSuccess {
		os.Exit(1)
	}
}
