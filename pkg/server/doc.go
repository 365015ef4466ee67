// Package server exposes a route tree over HTTP.
//
// The Server scans a pagesource.Source, builds the tree and serves it as JSON.
// Rebuilds produce a new tree and swap it in atomically; requests in flight
// keep using the tree they started with.
//
// # Endpoints
//
//	GET /healthz                      liveness and current route count
//	GET /api/routes                   full tree
//	GET /api/routes/match?path=P      route serving P, its params and trail
//	GET /api/routes/children?path=P   child routes of P (top level without path)
//	GET /api/routes/report            validation findings of the last build
//	GET /metrics                      Prometheus metrics, when enabled
//	GET /__dev/ws                     reload notifications, when a dev handler is set
//
// The /api routes sit behind middleware.FrameAuth whenever a token is
// configured.
//
// # Usage
//
//	srv, err := server.New(&server.Config{
//	    Addr:         ":8080",
//	    AuthRequired: true,
//	    Auth:         middleware.AuthConfig{Token: token},
//	}, pagesource.NewScanner(os.DirFS("src"), "pages", pagesource.ScanOptions{}))
//	if err != nil {
//	    return err
//	}
//	if _, err := srv.Rebuild(ctx); err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
package server
