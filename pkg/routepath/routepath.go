// Package routepath holds the path arithmetic shared by the route tree
// builder and the navigation router.
//
// Route keys are slash separated strings rooted at "/". The root key "/" has
// no segments; every other key has one segment per path component:
//
//	Segments("/jobs/[id]") == []string{"jobs", "[id]"}
//	Parent("/jobs/[id]")   == "/jobs"
//	Parent("/jobs")        == ""        // top level
//	Ancestors("/a/b/c")    == []string{"/a", "/a/b"}
//
// Request paths coming from the network go through Canonicalize first.
package routepath

import "strings"

// Segments splits a route key into its non-empty components.
func Segments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Parent returns the key with its last segment dropped.
// Top-level keys (and the root key) have the empty parent "".
func Parent(p string) string {
	i := strings.LastIndex(p, "/")
	if i <= 0 {
		return ""
	}
	return p[:i]
}

// Ancestors returns the strict ancestor keys of p, shortest first.
func Ancestors(p string) []string {
	segs := Segments(p)
	if len(segs) < 2 {
		return nil
	}
	out := make([]string, 0, len(segs)-1)
	for i := 1; i < len(segs); i++ {
		out = append(out, "/"+strings.Join(segs[:i], "/"))
	}
	return out
}

// Last returns the final segment of p. ok is false for the root key.
func Last(p string) (seg string, ok bool) {
	p = strings.TrimRight(p, "/")
	i := strings.LastIndex(p, "/")
	seg = p[i+1:]
	return seg, seg != ""
}

// Join builds a route key from segments.
func Join(segs ...string) string {
	return "/" + strings.Join(segs, "/")
}

// Depth is the number of segments in p.
func Depth(p string) int {
	return len(Segments(p))
}
