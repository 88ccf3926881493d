package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Quiexx/selup-landing-demo/pkg/contact"
	"github.com/Quiexx/selup-landing-demo/pkg/dom"
	"github.com/Quiexx/selup-landing-demo/pkg/middleware"
	"github.com/Quiexx/selup-landing-demo/pkg/protocol"
	"github.com/Quiexx/selup-landing-demo/pkg/reveal"
)

// Behaviors bundles one session's page model and controllers.
type Behaviors struct {
	Page   *dom.Page
	Reveal *reveal.Controller

	// Contact is nil when the page lacks the form, input, or error
	// element; submit and input events are then ignored.
	Contact *contact.Validator
}

// BehaviorFactory builds a fresh page model and controllers for a new
// session. Sessions never share page state.
type BehaviorFactory func() *Behaviors

// Server is the HTTP/WebSocket server hosting the page behaviors.
type Server struct {
	config  *Config
	factory BehaviorFactory
	router  chi.Router

	upgrader websocket.Upgrader
	metrics  *Metrics
	logger   *slog.Logger

	httpServer *http.Server

	mu       sync.Mutex
	sessions map[string]*Session
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics instance. Without it the server
// registers its collectors on the default Prometheus registry.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates a server. The factory is required; every accepted
// WebSocket connection calls it once.
func New(config *Config, factory BehaviorFactory, opts ...Option) *Server {
	config = config.withDefaults()

	s := &Server{
		config:   config,
		factory:  factory,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default().With("component", "server")
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}

	checkOrigin := config.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = sameHostOrigin
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     checkOrigin,
	}

	r := chi.NewRouter()
	r.Use(middleware.Metrics(middleware.WithRegistry(s.metrics.Registerer())))
	r.Use(middleware.Trace(middleware.WithFilter(func(req *http.Request) bool {
		return req.URL.Path != "/ws"
	})))
	r.Get("/ws", s.handleWS)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	metricsHandler := promhttp.Handler()
	if g, ok := s.metrics.Registerer().(prometheus.Gatherer); ok {
		metricsHandler = promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)
	s.router = r

	return s
}

// Router exposes the chi router so the application can mount the page
// and static asset routes.
func (s *Server) Router() chi.Router { return s.router }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run starts the listener and blocks until ctx is cancelled or the
// listener fails. Shutdown is graceful within ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.config.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		s.closeSessions()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("shut down")
		return nil
	}
}

// handleWS upgrades the connection, performs the handshake, and starts
// the session loops.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}

	hello, status := s.readHello(conn)

	sess := newSession(s, conn)
	sess.sendServerHello(status)
	if status != protocol.HandshakeOK {
		conn.Close()
		return
	}

	s.register(sess)
	sess.start(hello)
}

// readHello reads and validates the ClientHello. The first frame on
// the wire must be a handshake.
func (s *Server) readHello(conn *websocket.Conn) (*protocol.ClientHello, protocol.HandshakeStatus) {
	conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, protocol.HandshakeInvalidFormat
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil || frame.Type != protocol.FrameHandshake {
		return nil, protocol.HandshakeInvalidFormat
	}
	hello, err := protocol.DecodeClientHello(frame.Payload)
	if err != nil {
		return nil, protocol.HandshakeInvalidFormat
	}
	if hello.Version != protocol.Version {
		return nil, protocol.HandshakeVersionMismatch
	}
	return hello, protocol.HandshakeOK
}

func (s *Server) register(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	s.metrics.activeSessions.Inc()
}

func (s *Server) unregister(sess *Session) {
	s.mu.Lock()
	_, ok := s.sessions[sess.id]
	delete(s.sessions, sess.id)
	s.mu.Unlock()
	if ok {
		s.metrics.activeSessions.Dec()
	}
}

func (s *Server) closeSessions() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}

// newSessionID returns a random session identifier.
func newSessionID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "s-0"
	}
	return "s-" + hex.EncodeToString(b[:])
}

// sameHostOrigin is the default origin check: accept requests without
// an Origin header and requests whose origin host matches the request
// host.
func sameHostOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}
