package router

import (
	"slices"

	"github.com/vango-dev/pagetree/pkg/routepath"
	"github.com/vango-dev/pagetree/pkg/routetree"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Router is an immutable navigation index over a route tree.
// It is safe for concurrent use.
type Router struct {
	root   *segmentNode
	roots  []*routetree.RouteNode
	byPath map[string]*routetree.RouteNode
	parent map[string]*routetree.RouteNode
}

// MatchResult is the outcome of a successful Match.
type MatchResult struct {
	// Node is the route serving the path.
	Node *routetree.RouteNode `json:"node"`

	// Params holds values for [name] and [...name] segments.
	Params map[string]string `json:"params"`

	// Trail lists the route's ancestors from the top level down, ending with
	// the route itself.
	Trail []*routetree.RouteNode `json:"trail"`
}

// New indexes the given top-level routes. The nodes must not be modified
// afterwards.
func New(roots []*routetree.RouteNode) *Router {
	r := &Router{
		root:   &segmentNode{},
		roots:  roots,
		byPath: make(map[string]*routetree.RouteNode),
		parent: make(map[string]*routetree.RouteNode),
	}
	r.index(roots, nil)
	return r
}

func (r *Router) index(nodes []*routetree.RouteNode, parent *routetree.RouteNode) {
	for _, n := range nodes {
		if _, dup := r.byPath[n.Path]; dup {
			continue
		}
		r.byPath[n.Path] = n
		if parent != nil {
			r.parent[n.Path] = parent
		}
		r.root.insert(n)
		r.index(n.Children, n)
	}
}

// Match finds the route serving a request path. The path is canonicalized
// first; paths that fail canonicalization never match.
func (r *Router) Match(path string) (*MatchResult, bool) {
	res, err := routepath.Canonicalize(path)
	if err != nil {
		return nil, false
	}
	segments, err := routepath.DecodeSegments(res.Path)
	if err != nil {
		return nil, false
	}

	params := make(map[string]string)
	node, ok := r.root.match(segments, params)
	if !ok {
		return nil, false
	}

	return &MatchResult{
		Node:   node.route,
		Params: params,
		Trail:  r.Trail(node.route.Path),
	}, true
}

// Lookup returns the route with the exact key path.
func (r *Router) Lookup(path string) (*routetree.RouteNode, bool) {
	n, ok := r.byPath[path]
	return n, ok
}

// Children returns the child routes of path, or nil when path is unknown.
func (r *Router) Children(path string) []*routetree.RouteNode {
	if n, ok := r.byPath[path]; ok {
		return n.Children
	}
	return nil
}

// Trail returns the chain of routes from the top level down to path.
func (r *Router) Trail(path string) []*routetree.RouteNode {
	n, ok := r.byPath[path]
	if !ok {
		return nil
	}
	trail := []*routetree.RouteNode{n}
	for p, ok := r.parent[n.Path]; ok; p, ok = r.parent[p.Path] {
		trail = append(trail, p)
	}
	slices.Reverse(trail)
	return trail
}

// Roots returns the top-level routes.
func (r *Router) Roots() []*routetree.RouteNode {
	return r.roots
}

// Len returns the number of indexed routes.
func (r *Router) Len() int {
	return len(r.byPath)
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
