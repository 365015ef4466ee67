package routetree

import "encoding/json"

// Component is an opaque reference to renderable page content.
// The builder only stores it; callers own its lifetime.
type Component any

type container struct{}

// Container is the component of synthetic section routes.
// It renders nothing but its children.
var Container Component = container{}

// IsContainer reports whether c is the synthetic container component.
func IsContainer(c Component) bool {
	_, ok := c.(container)
	return ok
}

// PageEntry is one discovered page.
type PageEntry struct {
	// RawPath is the page file path relative to the project,
	// e.g. "./pages/jobs/list.vue".
	RawPath string

	// Component is the page content reference.
	Component Component
}

// Meta is the navigation metadata attached to every route.
type Meta struct {
	// Name is the human-readable title derived from the last path segment.
	Name string `json:"name" yaml:"name"`

	// IsRoot is true for routes in the top-level list.
	IsRoot bool `json:"isRoot" yaml:"isRoot"`
}

// RouteNode is a route in the navigation tree.
type RouteNode struct {
	// Path is the normalized route key, unique across the tree.
	Path string `json:"path"`

	// Component is the page content, or Container for synthetic sections.
	Component Component `json:"-"`

	// Children are the routes whose parent key is Path.
	Children []*RouteNode `json:"children"`

	// Meta is the navigation metadata.
	Meta Meta `json:"meta"`
}

// Synthetic reports whether the node is a generated section container.
func (n *RouteNode) Synthetic() bool {
	return IsContainer(n.Component)
}

// nodeView is the encoded form of a RouteNode.
type nodeView struct {
	Path      string       `json:"path" yaml:"path"`
	Synthetic bool         `json:"synthetic" yaml:"synthetic"`
	Meta      Meta         `json:"meta" yaml:"meta"`
	Children  []*RouteNode `json:"children" yaml:"children,omitempty"`
}

func (n *RouteNode) view() nodeView {
	children := n.Children
	if children == nil {
		children = []*RouteNode{}
	}
	return nodeView{Path: n.Path, Synthetic: n.Synthetic(), Meta: n.Meta, Children: children}
}

// MarshalJSON encodes the node with its synthetic flag; the component is omitted.
func (n *RouteNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.view())
}

// MarshalYAML implements yaml.Marshaler.
func (n *RouteNode) MarshalYAML() (any, error) {
	return n.view(), nil
}
