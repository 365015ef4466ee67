package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/pagetree/pkg/middleware"
	"github.com/vango-dev/pagetree/pkg/pagesource"
	"github.com/vango-dev/pagetree/pkg/router"
	"github.com/vango-dev/pagetree/pkg/routetree"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrNotBuilt is reported by handlers before the first successful rebuild.
var ErrNotBuilt = errors.New("route tree not built")

// Server holds the current route tree and serves it over HTTP.
type Server struct {
	config *Config
	source pagesource.Source
	logger *slog.Logger
	tracer trace.Tracer

	router atomic.Pointer[router.Router]
	report atomic.Pointer[router.Report]

	// rebuildMu serializes rebuilds so an older scan never replaces a newer tree.
	rebuildMu sync.Mutex

	handlerOnce sync.Once
	handler     http.Handler

	httpServer *http.Server
}

// New creates a Server reading pages from src. When cfg.AuthRequired is set
// and no token is configured, New fails with an error wrapping
// middleware.ErrMissingToken.
func New(cfg *Config, src pagesource.Source) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.applyDefaults()

	if cfg.AuthRequired {
		if err := cfg.Auth.Validate(); err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
	}
	if src == nil {
		return nil, errors.New("server: nil page source")
	}

	return &Server{
		config: cfg,
		source: src,
		logger: cfg.Logger,
		tracer: middleware.Tracer(middleware.WithTracerProvider(cfg.TracerProvider)),
	}, nil
}

// Rebuild scans the source, validates and builds a new tree, and swaps it in.
// On failure the previous tree stays in place. It returns the number of
// routes in the new tree.
func (s *Server) Rebuild(ctx context.Context) (int, error) {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	ctx, span := s.tracer.Start(ctx, "pagetree.rebuild")
	defer span.End()

	start := time.Now()
	entries, err := s.source.Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.config.Metrics.ObserveBuild(0, 0, time.Since(start), err)
		s.logger.Error("route tree rebuild failed", "error", err)
		s.notify(0, err)
		return 0, err
	}

	opts := s.config.TreeOptions
	report := router.Validate(entries, opts...)
	for _, finding := range report.Errors {
		s.logger.Warn("route validation",
			"type", finding.Type,
			"path", finding.Path,
			"files", finding.Files,
			"details", finding.Details)
	}

	roots := routetree.Build(entries, opts...)
	r := router.New(roots)
	pages := routetree.Pages(roots)

	s.report.Store(report)
	s.router.Store(r)

	elapsed := time.Since(start)
	span.SetAttributes(
		attribute.Int("pagetree.entries", len(entries)),
		attribute.Int("pagetree.routes", r.Len()),
		attribute.Int("pagetree.pages", pages),
	)
	span.SetStatus(codes.Ok, "")
	s.config.Metrics.ObserveBuild(r.Len(), pages, elapsed, nil)
	s.logger.Info("route tree built",
		"routes", r.Len(),
		"pages", pages,
		"findings", len(report.Errors),
		"duration", elapsed)
	s.notify(r.Len(), nil)

	return r.Len(), nil
}

func (s *Server) notify(routes int, err error) {
	if s.config.OnRebuild != nil {
		s.config.OnRebuild(routes, err)
	}
}

// Router returns the current router, or nil before the first rebuild.
func (s *Server) Router() *router.Router {
	return s.router.Load()
}

// Report returns the validation report of the current tree.
func (s *Server) Report() *router.Report {
	return s.report.Load()
}

// Run listens on cfg.Addr and serves until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
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

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}
