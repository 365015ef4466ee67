// Package routetree builds a nested navigation tree from a flat list of
// discovered page files.
//
// # File Structure Convention
//
// Pages live under a pages root and map to routes by their path:
//
//	./pages/
//	├── home.vue            → /            "Home"
//	├── open-positions.vue  → /open-positions "Open Positions"
//	└── jobs/
//	    ├── list.vue        → /jobs/list   "List"
//	    └── [id].vue        → /jobs/[id]   "[id]"
//
// Directories without a page of their own (jobs/ above) become synthetic
// container routes that only render their children, so every page is
// reachable through a connected chain of parents.
//
// # Usage
//
//	entries := []routetree.PageEntry{
//	    {RawPath: "./pages/home.vue", Component: home},
//	    {RawPath: "./pages/jobs/list.vue", Component: jobList},
//	}
//	roots := routetree.Build(entries)
//
// Build never fails and never mutates its input. The returned tree is owned
// by the caller and is safe for concurrent reads.
package routetree
