package routetree

import (
	"slices"

	"github.com/vango-dev/pagetree/pkg/routepath"
)

// candidate is a route waiting to be linked into the tree.
type candidate struct {
	path      string
	component Component
}

// Build turns discovered pages into a navigation tree and returns its
// top-level routes.
//
// Every page gets a connected chain of ancestors: a directory with no page of
// its own becomes a synthetic Container route, created once. Routes are then
// sorted by key, which places every ancestor before its descendants, and
// linked in a single pass.
//
// When two pages normalize to the same key the first one in input order wins
// and later ones are dropped. A real page always takes precedence over a
// synthetic container for the same key, whatever the discovery order.
func Build(entries []PageEntry, opts ...Option) []*RouteNode {
	o := resolve(opts)

	pages := make([]candidate, len(entries))
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		p := normalize(e.RawPath, o)
		pages[i] = candidate{path: p, component: e.Component}
		seen[p] = true
	}

	// Ancestors go in front of the page that needed them.
	list := make([]candidate, 0, len(pages))
	for _, c := range pages {
		for _, dir := range routepath.Ancestors(c.path) {
			if seen[dir] {
				continue
			}
			seen[dir] = true
			list = append(list, candidate{path: dir, component: Container})
		}
		list = append(list, c)
	}

	cmp := o.compare()
	slices.SortStableFunc(list, func(a, b candidate) int {
		return cmp(a.path, b.path)
	})

	var roots []*RouteNode
	byPath := make(map[string]*RouteNode, len(list))
	for _, c := range list {
		if _, dup := byPath[c.path]; dup {
			continue
		}

		parent, ok := byPath[routepath.Parent(c.path)]
		node := &RouteNode{
			Path:      c.path,
			Component: c.component,
			Meta: Meta{
				Name:   Title(c.path),
				IsRoot: !ok,
			},
		}
		if ok {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
		byPath[c.path] = node
	}

	return roots
}

// Walk visits nodes depth first, parents before children. Returning false
// from fn skips the node's children.
func Walk(nodes []*RouteNode, fn func(n *RouteNode, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []*RouteNode, depth int, fn func(*RouteNode, int) bool) {
	for _, n := range nodes {
		if fn(n, depth) {
			walk(n.Children, depth+1, fn)
		}
	}
}

// Count returns the number of routes in the tree.
func Count(nodes []*RouteNode) int {
	total := 0
	Walk(nodes, func(*RouteNode, int) bool {
		total++
		return true
	})
	return total
}

// Pages returns the number of non-synthetic routes in the tree.
func Pages(nodes []*RouteNode) int {
	total := 0
	Walk(nodes, func(n *RouteNode, _ int) bool {
		if !n.Synthetic() {
			total++
		}
		return true
	})
	return total
}
