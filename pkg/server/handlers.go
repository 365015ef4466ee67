package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/vango-dev/pagetree/pkg/middleware"
	"github.com/vango-dev/pagetree/pkg/router"
	"github.com/vango-dev/pagetree/pkg/routetree"
)

// RouteSummary is a route without its subtree.
type RouteSummary struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	Synthetic   bool   `json:"synthetic"`
	HasChildren bool   `json:"hasChildren"`
}

func summarize(n *routetree.RouteNode) RouteSummary {
	return RouteSummary{
		Path:        n.Path,
		Name:        n.Meta.Name,
		Synthetic:   n.Synthetic(),
		HasChildren: len(n.Children) > 0,
	}
}

func summarizeAll(nodes []*routetree.RouteNode) []RouteSummary {
	out := make([]RouteSummary, len(nodes))
	for i, n := range nodes {
		out[i] = summarize(n)
	}
	return out
}

// TreeResponse is the body of GET /api/routes.
type TreeResponse struct {
	Count  int                    `json:"count"`
	Pages  int                    `json:"pages"`
	Routes []*routetree.RouteNode `json:"routes"`
}

// MatchResponse is the body of GET /api/routes/match.
type MatchResponse struct {
	Route    RouteSummary      `json:"route"`
	Params   map[string]string `json:"params"`
	Trail    []RouteSummary    `json:"trail"`
	Children []RouteSummary    `json:"children"`
}

// ChildrenResponse is the body of GET /api/routes/children.
type ChildrenResponse struct {
	Path     string         `json:"path"`
	Children []RouteSummary `json:"children"`
}

// Handler returns the HTTP handler. It is built once.
func (s *Server) Handler() http.Handler {
	s.handlerOnce.Do(func() {
		s.handler = s.routes()
	})
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.OpenTelemetry(
		middleware.WithTracerProvider(s.config.TracerProvider),
		middleware.WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/healthz" }),
	))
	r.Use(s.config.Metrics.Middleware)

	r.Get("/healthz", s.handleHealth)
	if s.config.Metrics != nil {
		r.Handle("/metrics", s.config.Metrics.Handler())
	}
	if s.config.DevHandler != nil {
		r.Handle("/__dev/ws", s.config.DevHandler)
	}

	r.Route("/api/routes", func(r chi.Router) {
		if s.config.AuthRequired || s.config.Auth.Token != "" {
			auth := s.config.Auth
			if auth.OnFailure == nil && s.config.Metrics != nil {
				auth.OnFailure = s.config.Metrics.RecordAuthFailure
			}
			r.Use(middleware.FrameAuth(auth))
		}
		r.Get("/", s.handleTree)
		r.Get("/match", s.handleMatch)
		r.Get("/children", s.handleChildren)
		r.Get("/report", s.handleReport)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	rt := s.Router()
	if rt == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "starting"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "routes": rt.Len()})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	rt, ok := s.current(w)
	if !ok {
		return
	}
	roots := rt.Roots()
	if roots == nil {
		roots = []*routetree.RouteNode{}
	}
	writeJSON(w, http.StatusOK, TreeResponse{
		Count:  rt.Len(),
		Pages:  routetree.Pages(roots),
		Routes: roots,
	})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	rt, ok := s.current(w)
	if !ok {
		return
	}
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing path parameter")
		return
	}

	m, found := rt.Match(path)
	if !found {
		writeError(w, http.StatusNotFound, "no route for "+path)
		return
	}
	writeJSON(w, http.StatusOK, MatchResponse{
		Route:    summarize(m.Node),
		Params:   m.Params,
		Trail:    summarizeAll(m.Trail),
		Children: summarizeAll(m.Node.Children),
	})
}

func (s *Server) handleChildren(w http.ResponseWriter, r *http.Request) {
	rt, ok := s.current(w)
	if !ok {
		return
	}
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusOK, ChildrenResponse{Path: "", Children: summarizeAll(rt.Roots())})
		return
	}

	n, found := rt.Lookup(path)
	if !found {
		writeError(w, http.StatusNotFound, "no route "+path)
		return
	}
	writeJSON(w, http.StatusOK, ChildrenResponse{Path: n.Path, Children: summarizeAll(n.Children)})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.current(w); !ok {
		return
	}
	report := s.Report()
	if report == nil || report.Errors == nil {
		report = &router.Report{Errors: []router.ValidationError{}}
	}
	writeJSON(w, http.StatusOK, report)
}

// current returns the router or writes a 503 when none is built yet.
func (s *Server) current(w http.ResponseWriter) (*router.Router, bool) {
	rt := s.Router()
	if rt == nil {
		writeError(w, http.StatusServiceUnavailable, ErrNotBuilt.Error())
		return nil, false
	}
	return rt, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
