package router

import (
	"strings"

	"github.com/vango-dev/pagetree/pkg/routetree"
)

// segmentNode is a node in the match tree. Each level holds static children,
// at most one parameter child and at most one catch-all child.
type segmentNode struct {
	// segment is the static segment this node matches
	segment string

	// paramName is the parameter name for [name] and [...name] segments
	paramName string

	isParam    bool
	isCatchAll bool

	// route is the tree node served at this position, nil for gaps
	route *routetree.RouteNode

	children      []*segmentNode
	paramChild    *segmentNode
	catchAllChild *segmentNode
}

func (n *segmentNode) findChild(segment string) *segmentNode {
	for _, child := range n.children {
		if child.segment == segment {
			return child
		}
	}
	return nil
}

func (n *segmentNode) addChild(segment string) *segmentNode {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := &segmentNode{segment: segment}
	n.children = append(n.children, child)
	return child
}

// addParamChild returns the existing parameter child when there is one, so a
// second parameter name at the same level shares the first one's position.
func (n *segmentNode) addParamChild(name string) *segmentNode {
	if n.paramChild == nil {
		n.paramChild = &segmentNode{isParam: true, paramName: name}
	}
	return n.paramChild
}

func (n *segmentNode) addCatchAllChild(name string) *segmentNode {
	if n.catchAllChild == nil {
		n.catchAllChild = &segmentNode{isCatchAll: true, paramName: name}
	}
	return n.catchAllChild
}

// insert places route at the position described by its key. It reports
// false when the position is already taken.
func (n *segmentNode) insert(route *routetree.RouteNode) bool {
	current := n
	for _, seg := range splitPath(route.Path) {
		switch kind, name := parseSegment(seg); kind {
		case segmentCatchAll:
			current = current.addCatchAllChild(name)
		case segmentParam:
			current = current.addParamChild(name)
		default:
			current = current.addChild(seg)
		}
		if current.isCatchAll {
			break
		}
	}
	if current.route != nil {
		return false
	}
	current.route = route
	return true
}

// match finds the node serving segments. Params are filled on the way down
// and removed again when a branch fails.
func (n *segmentNode) match(segments []string, params map[string]string) (*segmentNode, bool) {
	if len(segments) == 0 {
		if n.route != nil {
			return n, true
		}
		return nil, false
	}

	segment := segments[0]
	remaining := segments[1:]

	if child := n.findChild(lower(segment)); child != nil {
		if node, ok := child.match(remaining, params); ok {
			return node, true
		}
	}

	if n.paramChild != nil {
		params[n.paramChild.paramName] = segment
		if node, ok := n.paramChild.match(remaining, params); ok {
			return node, true
		}
		delete(params, n.paramChild.paramName)
	}

	if n.catchAllChild != nil && n.catchAllChild.route != nil {
		params[n.catchAllChild.paramName] = strings.Join(segments, "/")
		return n.catchAllChild, true
	}

	return nil, false
}

type segmentKind int

const (
	segmentStatic segmentKind = iota
	segmentParam
	segmentCatchAll
)

// parseSegment classifies a route key segment.
//
//	list      → static
//	[id]      → param "id"
//	[...slug] → catch-all "slug"
func parseSegment(seg string) (segmentKind, string) {
	if len(seg) < 3 || seg[0] != '[' || seg[len(seg)-1] != ']' {
		return segmentStatic, ""
	}
	name := seg[1 : len(seg)-1]
	if rest, ok := strings.CutPrefix(name, "..."); ok {
		if rest == "" {
			return segmentStatic, ""
		}
		return segmentCatchAll, rest
	}
	return segmentParam, name
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
