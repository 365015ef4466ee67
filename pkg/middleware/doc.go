// Package middleware provides the net/http middleware used by the pagetree
// navigation service.
//
// This package includes:
//   - FrameAuth, the token gate for requests coming from the host frame
//   - Prometheus request and route-tree metrics
//   - OpenTelemetry request spans
//
// # Frame Authorization
//
// The widget runs inside a host frame that passes the backend token either as
// a query parameter or as an Authorization header with the "bga" scheme:
//
//	GET /api/routes?token=abc123
//	Authorization: bga abc123
//
// Requests without a matching token get a 401 with a JSON body.
//
//	r.Use(middleware.FrameAuth(middleware.AuthConfig{Token: cfg.Auth.Token}))
//
// # Prometheus Metrics
//
// Metrics are registered on the configured registry:
//   - pagetree_http_requests_total: requests by route pattern, method and status
//   - pagetree_http_request_duration_seconds: request latency by route pattern
//   - pagetree_routes: routes in the current tree
//   - pagetree_pages: page routes in the current tree
//   - pagetree_build_duration_seconds: scan and build duration
//   - pagetree_build_errors_total: failed rebuilds
//   - pagetree_auth_failures_total: rejected requests by reason
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r.Use(m.Middleware)
//	r.Handle("/metrics", m.Handler())
//
// # OpenTelemetry
//
// OpenTelemetry starts a server span per request using the global tracer
// provider unless one is given with WithTracerProvider. The span is stored in
// the request context:
//
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("pagetree")))
package middleware
