package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/psychat-dev/psychat/pkg/assets"
	"github.com/psychat-dev/psychat/pkg/middleware"
	"github.com/psychat-dev/psychat/pkg/router"
)

// Server serves navigation resolution over HTTP and WebSocket.
type Server struct {
	table    *router.Table
	resolver router.Resolver
	config   *Config
	logger   *slog.Logger

	metrics   *middleware.Metrics
	gatherer  prometheus.Gatherer
	notFound  http.Handler
	resolveMW []router.Middleware

	upgrader websocket.Upgrader
	mux      chi.Router
	assets   *assets.Resolver

	mu         sync.Mutex
	httpServer *http.Server
	conns      map[string]*websocket.Conn
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records stream metrics on m and serves gatherer on /metrics.
// Resolution metrics are recorded only when m's middleware is also in the
// resolver chain.
func WithMetrics(m *middleware.Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = gatherer
	}
}

// WithResolverMiddleware wraps the table's resolver with mw.
func WithResolverMiddleware(mw ...router.Middleware) Option {
	return func(s *Server) {
		s.resolveMW = append(s.resolveMW, mw...)
	}
}

// WithNotFound sets the handler for page requests that match no route.
func WithNotFound(h http.Handler) Option {
	return func(s *Server) {
		s.notFound = h
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.config.Logger = logger
	}
}

// New creates a server for table. A nil config uses DefaultConfig.
func New(table *router.Table, config *Config, opts ...Option) *Server {
	if config == nil {
		config = DefaultConfig()
	} else {
		c := *config
		config = &c
	}

	s := &Server{
		table:  table,
		config: config,
		conns:  make(map[string]*websocket.Conn),
	}
	for _, opt := range opts {
		opt(s)
	}

	base := config.Logger
	if base == nil {
		base = slog.Default()
	}
	s.logger = base.With("component", "server")

	if s.notFound == nil {
		s.notFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "404 page not found", http.StatusNotFound)
		})
	}

	s.resolver = router.Chain(table.Resolver(), s.resolveMW...)

	if config.StaticDir != "" {
		res, err := assets.ForDir(config.StaticDir, assetsPrefix)
		if err != nil {
			s.logger.Warn("asset manifest ignored", "dir", config.StaticDir, "error", err)
			res = assets.NewResolver(assetsPrefix, nil)
		}
		s.assets = res
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  config.ReadBufferSize,
		WriteBufferSize: config.WriteBufferSize,
		CheckOrigin:     config.checkOrigin(),
	}

	s.mux = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/_nav", func(nr chi.Router) {
		nr.Get("/resolve", s.handleResolve)
		nr.Get("/routes", s.handleRoutes)
		nr.Get("/href/{name}", s.handleHref)
		nr.Get("/ws", s.handleWebSocket)
	})

	if s.config.StaticDir != "" {
		r.Handle(assetsPrefix+"*", newStaticHandler(s.config.StaticDir))
	}

	r.Get("/*", s.handlePage)
	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Resolver returns the resolver chain used by every transport.
func (s *Server) Resolver() router.Resolver {
	return s.resolver
}

// Run listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String(), "routes", s.table.Len())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()
	}

	s.mu.Lock()
	srv := s.httpServer
	for id, conn := range s.conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
			deadline(s.config.WriteTimeout))
		_ = conn.Close()
		delete(s.conns, id)
	}
	s.mu.Unlock()

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
