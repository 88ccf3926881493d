// Package selup wires the landing page behaviors into a runnable
// application: configuration, per-session page models, the WebSocket
// session server, and static file serving behind a single
// http.Handler.
//
// Create an App from a selup.json config:
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app := selup.New(cfg)
//	http.ListenAndServe(cfg.Addr, app)
package selup

import (
	"context"
	"log/slog"
	"net/http"

	clientdist "github.com/Quiexx/selup-landing-demo/client/dist"
	"github.com/Quiexx/selup-landing-demo/internal/config"
	"github.com/Quiexx/selup-landing-demo/pkg/contact"
	"github.com/Quiexx/selup-landing-demo/pkg/dom"
	"github.com/Quiexx/selup-landing-demo/pkg/reveal"
	"github.com/Quiexx/selup-landing-demo/pkg/server"
)

// App is the application entry point. It implements http.Handler.
type App struct {
	config *config.Config
	server *server.Server
	logger *slog.Logger

	metrics  *server.Metrics
	staticFS http.FileSystem
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithStaticFS overrides the static file source. Without it the App
// serves from the configured static directory on disk.
func WithStaticFS(fs http.FileSystem) Option {
	return func(a *App) {
		a.staticFS = fs
	}
}

// WithMetrics sets the server metrics instance. Without it collectors
// register on the default Prometheus registry.
func WithMetrics(m *server.Metrics) Option {
	return func(a *App) {
		a.metrics = m
	}
}

// New creates an application from a validated configuration.
func New(cfg *config.Config, opts ...Option) *App {
	a := &App{config: cfg}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.Default().With("component", "app", "name", cfg.Name)
	}
	if a.staticFS == nil && cfg.Static.Dir != "" {
		a.staticFS = http.Dir(cfg.Static.Dir)
	}

	serverCfg := server.DefaultConfig()
	serverCfg.Addr = cfg.Addr
	serverOpts := []server.Option{
		server.WithLogger(a.logger.With("component", "server")),
	}
	if a.metrics != nil {
		serverOpts = append(serverOpts, server.WithMetrics(a.metrics))
	}
	a.server = server.New(serverCfg, a.behaviorFactory(), serverOpts...)

	// Everything the session router does not claim falls through to
	// static serving, with index.html at the root.
	a.server.Router().Get(ClientScriptPath, serveClientScript)
	a.server.Router().NotFound(a.serveStatic)

	return a
}

// behaviorFactory builds the per-session page model from the
// configured element ids. Every session gets independent state.
func (a *App) behaviorFactory() server.BehaviorFactory {
	cfg := a.config

	return func() *server.Behaviors {
		page := dom.NewPage()
		for _, id := range cfg.Page.Sections {
			page.Add(id).SetAttr(reveal.MarkerAttr, "")
		}

		var validator *contact.Validator
		if c := cfg.Page.Contact; c.Enabled() {
			page.Add(c.Form)
			page.Add(c.Input)
			page.Add(c.Error)
			validator, _ = contact.New(page, c.Form, c.Input, c.Error, contact.Options{})
		}

		ctrl := reveal.New(page, reveal.Options{
			Threshold: cfg.Reveal.Threshold,
			Class:     cfg.Reveal.Class,
		})

		return &server.Behaviors{Page: page, Reveal: ctrl, Contact: validator}
	}
}

// RevealHook returns the client wiring attribute value for the
// configured reveal options, for templating into the served page.
func (a *App) RevealHook() string {
	page := dom.NewPage()
	return reveal.New(page, reveal.Options{
		Threshold: a.config.Reveal.Threshold,
		Class:     a.config.Reveal.Class,
	}).Hook()
}

// ClientScriptPath is the route serving the thin client script.
const ClientScriptPath = "/_selup/client.js"

func serveClientScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(clientdist.SelupJS)
}

// Config returns the application configuration.
func (a *App) Config() *config.Config { return a.config }

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.server.ServeHTTP(w, r)
}

// Run starts the server and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("starting", "addr", a.config.Addr)
	return a.server.Run(ctx)
}
