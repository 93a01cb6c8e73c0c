package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/ecoreport/internal/logger"
	output "github.com/custodia-labs/ecoreport/internal/render"
)

// Default limits applied when no option overrides them.
const (
	DefaultRate  = 5.0
	DefaultBurst = 10
)

// Server is the HTTP API over the report pipeline.
type Server struct {
	ports    *Ports
	metrics  *Metrics
	limiter  *RateLimiter
	envelope []output.EnvelopeOption
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithRateLimit sets the per-client request rate and burst.
// A non-positive rate disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.limiter = NewRateLimiter(rps, burst)
	}
}

// WithMetrics uses m instead of a fresh collector set.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithEnvelope passes options to the JSON document envelope of each response.
func WithEnvelope(opts ...output.EnvelopeOption) Option {
	return func(s *Server) {
		s.envelope = opts
	}
}

// NewServer creates a new HTTP server with the given ports.
func NewServer(ports *Ports, opts ...Option) (*Server, error) {
	if ports == nil {
		return nil, ErrMissingPipelineService
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:   ports,
		metrics: NewMetrics(),
		limiter: NewRateLimiter(DefaultRate, DefaultBurst),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.limiter.Handler)
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{name}", s.handleReport)
	})

	return r
}

// Handler returns the root handler, for use with httptest or a custom server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the collectors updated by report requests.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("serving reports on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// requestLogger logs each request in verbose mode with its request ID.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Debug("[%s] %s %s %d %s",
			middleware.GetReqID(r.Context()), r.Method, r.URL.Path, ww.Status(),
			time.Since(start).Round(time.Microsecond))
	})
}
