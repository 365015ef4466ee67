package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/vango-dev/pagetree/internal/config"
	"github.com/vango-dev/pagetree/internal/dev"
	"github.com/vango-dev/pagetree/internal/errors"
	"github.com/vango-dev/pagetree/pkg/middleware"
	"github.com/vango-dev/pagetree/pkg/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the navigation tree over HTTP",
		Long: `Start the navigation service.

The tree is available under /api/routes for clients presenting the frame
token, either as ?token=... or as "Authorization: bga <token>".
With --watch the tree is rebuilt whenever a page file changes and
connected clients are told over /__dev/ws.

Examples:
  pagetree serve
  pagetree serve --addr 127.0.0.1:9000
  BACKEND_API_TOKEN=secret pagetree serve --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.dir)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("watch") {
				cfg.Server.Watch = watch
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, slog.Default())
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from pagetree.json)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Rebuild the tree when pages change")

	return cmd
}

// service is a configured server plus its optional dev helpers.
type service struct {
	server  *server.Server
	hub     *dev.ReloadHub
	watcher *dev.Watcher
}

func newService(cfg *config.Config, logger *slog.Logger) (*service, error) {
	timeout, err := cfg.ShutdownTimeout()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.TreeOptions()
	if err != nil {
		return nil, err
	}

	scfg := &server.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: timeout,
		AuthRequired:    cfg.Auth.Required,
		Auth: middleware.AuthConfig{
			Token: cfg.Auth.Token,
			Param: cfg.Auth.Param,
		},
		TreeOptions: opts,
		Logger:      logger.With("component", "server"),
	}

	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		scfg.Metrics = middleware.NewMetrics(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(registry),
		)
	}

	svc := &service{}
	if cfg.Server.Watch {
		if cfg.Source.Type != config.SourceDir {
			logger.Warn("watch mode needs a dir source; not watching", "source", cfg.Source.Type)
		} else {
			svc.hub = dev.NewReloadHub(logger)
			scfg.DevHandler = svc.hub
			scfg.OnRebuild = svc.hub.NotifyRebuild
		}
	}

	srv, err := server.New(scfg, newSource(cfg))
	if err != nil {
		if stderrors.Is(err, middleware.ErrMissingToken) {
			return nil, errors.New("E203").
				WithSuggestion("Set BACKEND_API_TOKEN or VITE_BACKEND_API_TOKEN, or auth.required=false for local use").
				Wrap(err)
		}
		return nil, errors.New("E401").Wrap(err)
	}
	svc.server = srv

	if svc.hub != nil {
		w, err := dev.NewWatcher(dev.WatcherConfig{
			Root:      cfg.PagesPath(),
			Extension: cfg.Pages.Extension,
			Logger:    logger,
		})
		if err != nil {
			svc.hub.Close()
			return nil, errors.New("E402").WithDetail(cfg.PagesPath()).Wrap(err)
		}
		w.OnChange(func([]string) {
			_, _ = srv.Rebuild(context.Background())
		})
		svc.watcher = w
	}

	return svc, nil
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	svc, err := newService(cfg, logger)
	if err != nil {
		return err
	}
	defer svc.close()

	// A failed first build is fatal unless watching, where the next change
	// retries it.
	if _, err := svc.server.Rebuild(ctx); err != nil && svc.watcher == nil {
		return scanError(cfg, err)
	}

	if svc.watcher != nil {
		go func() {
			if err := svc.watcher.Start(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
				logger.Error("watcher stopped", "error", err)
			}
		}()
	}

	if err := svc.server.Run(ctx); err != nil {
		return errors.New("E401").WithDetail(cfg.Server.Addr).Wrap(err)
	}
	return nil
}

func (s *service) close() {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	if s.hub != nil {
		s.hub.Close()
	}
}
