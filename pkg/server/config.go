package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vango-dev/pagetree/pkg/middleware"
	"github.com/vango-dev/pagetree/pkg/routetree"
	"go.opentelemetry.io/otel/trace"
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address.
	// Default: ":8080".
	Addr string

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout is passed to http.Server.
	// Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// AuthRequired makes New fail when Auth.Token is empty.
	AuthRequired bool

	// Auth configures the frame token gate on /api routes.
	Auth middleware.AuthConfig

	// TreeOptions are passed to routetree.Build and router.Validate.
	TreeOptions []routetree.Option

	// Metrics records request and build metrics. Nil disables metrics and
	// the /metrics endpoint.
	Metrics *middleware.Metrics

	// TracerProvider supplies request and rebuild spans.
	// Default: the global provider.
	TracerProvider trace.TracerProvider

	// DevHandler is mounted at /__dev/ws when set.
	DevHandler http.Handler

	// OnRebuild is called after every rebuild with the route count or the
	// error that stopped it.
	OnRebuild func(routes int, err error)

	// Logger is the structured logger.
	// Default: slog.Default() with component=server.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with defaults filled in.
func DefaultConfig() *Config {
	return &Config{
		Addr:              ":8080",
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Addr == "" {
		c.Addr = defaults.Addr
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default().With("component", "server")
	}
}
