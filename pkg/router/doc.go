// Package router answers navigation queries against a built route tree.
//
// A Router is an immutable index over the nodes returned by routetree.Build.
// It keeps a segment tree for matching request paths and a key index for
// exact lookups:
//
//	/                   → home page
//	/jobs               → synthetic container
//	├── /jobs/list      → static segment
//	├── /jobs/[id]      → parameter segment, matches /jobs/42
//	└── /docs/[...slug] → catch-all segment, matches /docs/a/b/c
//
// # Matching
//
// Static segments are tried first, then the parameter child, then the
// catch-all child, with backtracking. Static segments compare case
// insensitively because route keys are lower-cased when the tree is built.
// Parameter values keep the case of the request.
//
//	r := router.New(routetree.Build(entries))
//	m, ok := r.Match("/jobs/42")
//	// m.Node.Path == "/jobs/[id]", m.Params["id"] == "42"
//	// m.Trail is [/jobs, /jobs/[id]]
//
// # Validation
//
// Validate inspects the raw entries before they are built and reports the
// inputs the builder resolves silently: duplicate pages, pages standing in
// for a section container and sibling parameters with different names.
package router
