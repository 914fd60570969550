package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arclebanon/arccms/internal/cache"
	"github.com/arclebanon/arccms/internal/resolver"
	"github.com/arclebanon/arccms/internal/section"
	"github.com/arclebanon/arccms/internal/wagtail"
)

const (
	// defaultShutdownTimeout bounds graceful shutdown.
	defaultShutdownTimeout = 10 * time.Second

	// readHeaderTimeout guards against slow clients.
	readHeaderTimeout = 10 * time.Second
)

// Source is the content the server resolves against.
// *cache.PageCache implements it.
type Source interface {
	resolver.Source
	Invalidate()
	Stats() cache.Stats
}

// HealthChecker probes the CMS. *wagtail.Client implements it.
type HealthChecker interface {
	CheckHealth(ctx context.Context) wagtail.HealthStatus
}

// Recorder stores resolution outcomes. *database.HistoryDB implements it.
type Recorder interface {
	SaveOutcomes(ctx context.Context, outcomes []resolver.Outcome) error
}

// Server is the preview HTTP server.
type Server struct {
	addr            string
	baseURL         string
	src             Source
	health          HealthChecker
	recorder        Recorder
	sectionOpts     section.Options
	concurrency     int
	shutdownTimeout time.Duration
	logger          *slog.Logger
	router          *chi.Mux
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithHealthChecker enables GET /healthz/cms.
func WithHealthChecker(hc HealthChecker) Option {
	return func(s *Server) {
		s.health = hc
	}
}

// WithRecorder records every resolved run.
func WithRecorder(r Recorder) Option {
	return func(s *Server) {
		s.recorder = r
	}
}

// WithSectionOptions sets the options sections are built with.
func WithSectionOptions(opts section.Options) Option {
	return func(s *Server) {
		s.sectionOpts = opts
	}
}

// WithConcurrency sets how many sections a request resolves at once.
func WithConcurrency(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithLogger sets the logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a server resolving against src. baseURL is the CMS origin,
// used for media URLs and reports.
func New(baseURL string, src Source, opts ...Option) *Server {
	s := &Server{
		addr:            "127.0.0.1:8080",
		baseURL:         baseURL,
		src:             src,
		sectionOpts:     section.Options{BaseURL: baseURL},
		concurrency:     8,
		shutdownTimeout: defaultShutdownTimeout,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sectionOpts.BaseURL == "" {
		s.sectionOpts.BaseURL = baseURL
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/healthz/cms", s.handleCMSHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/sections", s.handleSections)
		r.Get("/sections/{name}", s.handleSection)
		r.Get("/page", s.handlePage)
		r.Get("/cache", s.handleCacheStats)
		r.Post("/refresh", s.handleRefresh)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", s.addr, "cms", s.baseURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("preview server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown preview server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("preview server: %w", err)
	}
	return nil
}
