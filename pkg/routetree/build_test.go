package routetree

import (
	"encoding/json"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// shape is a component-free projection of a tree used for structural diffs.
type shape struct {
	Path      string
	Name      string
	IsRoot    bool
	Synthetic bool
	Children  []shape
}

func shapeOf(nodes []*RouteNode) []shape {
	var out []shape
	for _, n := range nodes {
		out = append(out, shape{
			Path:      n.Path,
			Name:      n.Meta.Name,
			IsRoot:    n.Meta.IsRoot,
			Synthetic: n.Synthetic(),
			Children:  shapeOf(n.Children),
		})
	}
	return out
}

func TestBuildScenario(t *testing.T) {
	entries := []PageEntry{
		{RawPath: "./pages/home.vue", Component: "C1"},
		{RawPath: "./pages/jobs/list.vue", Component: "C2"},
		{RawPath: "./pages/jobs/[id].vue", Component: "C3"},
	}

	roots := Build(entries)

	want := []shape{
		{Path: "/", Name: "Home", IsRoot: true},
		{Path: "/jobs", Name: "Jobs", IsRoot: true, Synthetic: true, Children: []shape{
			{Path: "/jobs/[id]", Name: "[id]"},
			{Path: "/jobs/list", Name: "List"},
		}},
	}
	if diff := cmp.Diff(want, shapeOf(roots)); diff != "" {
		t.Fatalf("Build() mismatch (-want +got):\n%s", diff)
	}

	if roots[0].Component != "C1" {
		t.Errorf("root component = %v, want C1", roots[0].Component)
	}
	jobs := roots[1]
	if !IsContainer(jobs.Component) {
		t.Errorf("/jobs component = %v, want Container", jobs.Component)
	}
	got := map[string]Component{}
	for _, c := range jobs.Children {
		got[c.Path] = c.Component
	}
	if got["/jobs/list"] != "C2" || got["/jobs/[id]"] != "C3" {
		t.Errorf("children components = %v", got)
	}
}

func TestBuildSyntheticContainer(t *testing.T) {
	roots := Build([]PageEntry{{RawPath: "./pages/team/engineering.vue", Component: "E"}})

	want := []shape{
		{Path: "/team", Name: "Team", IsRoot: true, Synthetic: true, Children: []shape{
			{Path: "/team/engineering", Name: "Engineering"},
		}},
	}
	if diff := cmp.Diff(want, shapeOf(roots)); diff != "" {
		t.Fatalf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDeepChainCreatedOnce(t *testing.T) {
	roots := Build([]PageEntry{
		{RawPath: "./pages/a/b/c/d.vue", Component: "D"},
		{RawPath: "./pages/a/b/e.vue", Component: "E"},
		{RawPath: "./pages/a/x.vue", Component: "X"},
	})

	if got := Count(roots); got != 6 {
		t.Errorf("Count = %d, want 6 (/a, /a/b, /a/b/c, 3 pages)", got)
	}
	if got := Pages(roots); got != 3 {
		t.Errorf("Pages = %d, want 3", got)
	}
	if len(roots) != 1 || roots[0].Path != "/a" {
		t.Fatalf("roots = %v, want single /a", shapeOf(roots))
	}
}

func TestBuildPageReplacesContainer(t *testing.T) {
	// The section page is discovered after a page that needs it as an ancestor.
	entries := []PageEntry{
		{RawPath: "./pages/team/engineering.vue", Component: "E"},
		{RawPath: "./pages/team.vue", Component: "T"},
	}

	for _, order := range [][]PageEntry{entries, {entries[1], entries[0]}} {
		roots := Build(order)
		if len(roots) != 1 {
			t.Fatalf("len(roots) = %d, want 1: %v", len(roots), shapeOf(roots))
		}
		if roots[0].Component != "T" {
			t.Errorf("/team component = %v, want page T", roots[0].Component)
		}
		if len(roots[0].Children) != 1 || roots[0].Children[0].Path != "/team/engineering" {
			t.Errorf("/team children = %v", shapeOf(roots[0].Children))
		}
	}
}

func TestBuildDuplicatePagesFirstWins(t *testing.T) {
	roots := Build([]PageEntry{
		{RawPath: "./pages/About.vue", Component: "first"},
		{RawPath: "./pages/about.vue", Component: "second"},
	})

	if len(roots) != 1 {
		t.Fatalf("len(roots) = %d, want 1", len(roots))
	}
	if roots[0].Component != "first" {
		t.Errorf("component = %v, want first", roots[0].Component)
	}
}

func TestBuildEmpty(t *testing.T) {
	if roots := Build(nil); roots != nil {
		t.Errorf("Build(nil) = %v, want nil", roots)
	}
}

func TestBuildInvariants(t *testing.T) {
	entries := []PageEntry{
		{RawPath: "./pages/home.vue", Component: 1},
		{RawPath: "./pages/open-positions.vue", Component: 2},
		{RawPath: "./pages/jobs/list.vue", Component: 3},
		{RawPath: "./pages/jobs/[id].vue", Component: 4},
		{RawPath: "./pages/jobs/[id]/apply.vue", Component: 5},
		{RawPath: "./pages/team/engineering/backend.vue", Component: 6},
		{RawPath: "./pages/team/engineering/frontend.vue", Component: 7},
		{RawPath: "./pages/team/sales.vue", Component: 8},
		{RawPath: "./pages/settings.vue", Component: 9},
		{RawPath: "./pages/settings/profile.vue", Component: 10},
	}
	roots := Build(entries)

	seen := map[string]bool{}
	parentOf := map[string]string{}
	top := map[string]bool{}
	for _, r := range roots {
		top[r.Path] = true
	}

	var visit func(nodes []*RouteNode, parent string)
	visit = func(nodes []*RouteNode, parent string) {
		for _, n := range nodes {
			if seen[n.Path] {
				t.Errorf("path %q appears twice", n.Path)
			}
			seen[n.Path] = true
			parentOf[n.Path] = parent

			if n.Meta.IsRoot != top[n.Path] {
				t.Errorf("%q IsRoot = %v, top-level = %v", n.Path, n.Meta.IsRoot, top[n.Path])
			}
			for _, c := range n.Children {
				if !strings.HasPrefix(c.Path, n.Path+"/") {
					t.Errorf("child %q is not under %q", c.Path, n.Path)
				}
			}
			visit(n.Children, n.Path)
		}
	}
	visit(roots, "")

	// Ancestor completeness: every /a/b/c has /a/b as parent and /a as grandparent.
	for p := range seen {
		segs := strings.Split(strings.TrimPrefix(p, "/"), "/")
		if p == "/" || len(segs) < 2 {
			continue
		}
		wantParent := "/" + strings.Join(segs[:len(segs)-1], "/")
		if parentOf[p] != wantParent {
			t.Errorf("parent of %q = %q, want %q", p, parentOf[p], wantParent)
		}
	}
	if parentOf["/team/engineering/backend"] != "/team/engineering" || parentOf["/team/engineering"] != "/team" {
		t.Error("expected /team → /team/engineering → /team/engineering/backend chain")
	}
}

func TestBuildOrderIndependent(t *testing.T) {
	entries := []PageEntry{
		{RawPath: "./pages/home.vue", Component: "h"},
		{RawPath: "./pages/jobs/list.vue", Component: "l"},
		{RawPath: "./pages/jobs/[id].vue", Component: "i"},
		{RawPath: "./pages/jobs/[id]/apply.vue", Component: "a"},
		{RawPath: "./pages/team/engineering.vue", Component: "e"},
		{RawPath: "./pages/team.vue", Component: "t"},
		{RawPath: "./pages/open-positions.vue", Component: "o"},
	}
	want := Build(entries)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]PageEntry(nil), entries...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got := Build(shuffled)
		if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b Component) bool {
			return IsContainer(a) == IsContainer(b) && (IsContainer(a) || a == b)
		})); diff != "" {
			t.Fatalf("permutation %d changed the tree (-want +got):\n%s", i, diff)
		}
	}
}

func TestBuildWithOptions(t *testing.T) {
	roots := Build([]PageEntry{
		{RawPath: "views/index.page", Component: "i"},
		{RawPath: "views/docs/intro.page", Component: "d"},
	}, WithPagesRoot("views/"), WithExtension(".page"), WithHomePage("index"))

	want := []shape{
		{Path: "/", Name: "Home", IsRoot: true},
		{Path: "/docs", Name: "Docs", IsRoot: true, Synthetic: true, Children: []shape{
			{Path: "/docs/intro", Name: "Intro"},
		}},
	}
	if diff := cmp.Diff(want, shapeOf(roots)); diff != "" {
		t.Fatalf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildWithCollation(t *testing.T) {
	roots := Build([]PageEntry{
		{RawPath: "./pages/b/x.vue", Component: 1},
		{RawPath: "./pages/a.vue", Component: 2},
		{RawPath: "./pages/b.vue", Component: 3},
	}, WithCollation(language.English))

	want := []shape{
		{Path: "/a", Name: "A", IsRoot: true},
		{Path: "/b", Name: "B", IsRoot: true, Children: []shape{
			{Path: "/b/x", Name: "X"},
		}},
	}
	if diff := cmp.Diff(want, shapeOf(roots)); diff != "" {
		t.Fatalf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	roots := Build([]PageEntry{
		{RawPath: "./pages/a/b.vue", Component: 1},
		{RawPath: "./pages/c.vue", Component: 2},
	})

	var visited []string
	Walk(roots, func(n *RouteNode, depth int) bool {
		visited = append(visited, n.Path)
		return n.Path != "/a"
	})
	if diff := cmp.Diff([]string{"/a", "/c"}, visited); diff != "" {
		t.Errorf("Walk visited mismatch (-want +got):\n%s", diff)
	}
}

func TestRouteNodeEncoding(t *testing.T) {
	roots := Build([]PageEntry{{RawPath: "./pages/jobs/list.vue", Component: "L"}})

	data, err := json.Marshal(roots)
	if err != nil {
		t.Fatalf("json.Marshal error: %v", err)
	}
	want := `[{"path":"/jobs","synthetic":true,"meta":{"name":"Jobs","isRoot":true},"children":[{"path":"/jobs/list","synthetic":false,"meta":{"name":"List","isRoot":false},"children":[]}]}]`
	if string(data) != want {
		t.Errorf("json =\n%s\nwant\n%s", data, want)
	}

	out, err := yaml.Marshal(roots)
	if err != nil {
		t.Fatalf("yaml.Marshal error: %v", err)
	}
	if !strings.Contains(string(out), "path: /jobs/list") || !strings.Contains(string(out), "synthetic: true") {
		t.Errorf("yaml output missing fields:\n%s", out)
	}
}
