package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	selup "github.com/Quiexx/selup-landing-demo"
	"github.com/Quiexx/selup-landing-demo/internal/config"
	"github.com/Quiexx/selup-landing-demo/internal/errors"
)

func serveCmd() *cobra.Command {
	var (
		addr       string
		configPath string
		jsonLogs   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the landing page server",
		Long: `Start the server defined by selup.json in the working directory.

Examples:
  selup serve
  selup serve --addr=:9090
  selup serve --config=deploy/selup.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, configPath, jsonLogs)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from selup.json)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to selup.json")
	cmd.Flags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")

	return cmd
}

func runServe(addr, configPath string, jsonLogs bool) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	if _, err := os.Stat(cfg.Static.Dir); err != nil {
		return errors.New("E110").WithDetailf("static dir %q", cfg.Static.Dir)
	}

	var handler slog.Handler
	if jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	} else {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	app := selup.New(cfg, selup.WithLogger(logger.With("component", "app")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}
