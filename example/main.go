// Command example serves the demo landing page with server-driven
// reveal and contact validation behaviors.
//
// Run it from this directory:
//
//	go run . [-addr :8080]
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	selup "github.com/Quiexx/selup-landing-demo"
	"github.com/Quiexx/selup-landing-demo/internal/config"
)

func main() {
	addr := flag.String("addr", "", "listen address (default from selup.json)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(".")
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	app := selup.New(cfg, selup.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
