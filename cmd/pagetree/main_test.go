package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/pagetree/internal/config"
	"github.com/vango-dev/pagetree/internal/errors"
	"github.com/vango-dev/pagetree/pkg/routetree"
	"gopkg.in/yaml.v3"
)

func sampleTree() []*routetree.RouteNode {
	return routetree.Build([]routetree.PageEntry{
		{RawPath: "./pages/home.vue", Component: "h"},
		{RawPath: "./pages/jobs/list.vue", Component: "l"},
		{RawPath: "./pages/jobs/[id].vue", Component: "i"},
		{RawPath: "./pages/jobs/[id]/apply.vue", Component: "a"},
	})
}

func TestRenderRoutesTree(t *testing.T) {
	var buf bytes.Buffer
	if err := renderRoutes(&buf, sampleTree(), formatTree); err != nil {
		t.Fatal(err)
	}

	want := `Home  /
Jobs  /jobs (section)
├── [id]  /jobs/[id]
│   └── Apply  /jobs/[id]/apply
└── List  /jobs/list
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("tree output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderRoutesJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderRoutes(&buf, sampleTree(), formatJSON); err != nil {
		t.Fatal(err)
	}

	var decoded []struct {
		Path      string `json:"path"`
		Synthetic bool   `json:"synthetic"`
		Children  []any  `json:"children"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 2 || decoded[1].Path != "/jobs" || !decoded[1].Synthetic || len(decoded[1].Children) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestRenderRoutesYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := renderRoutes(&buf, sampleTree(), formatYAML); err != nil {
		t.Fatal(err)
	}

	var decoded []map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if len(decoded) != 2 || decoded[0]["path"] != "/" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestRenderRoutesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := renderRoutes(&buf, nil, formatJSON); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("empty tree = %q, want []", got)
	}
}

func TestRenderRoutesUnknownFormat(t *testing.T) {
	err := renderRoutes(&bytes.Buffer{}, sampleTree(), "xml")
	if errors.Code(err) != "E501" {
		t.Errorf("error = %v, want E501", err)
	}
}

func TestNewManifest(t *testing.T) {
	m := newManifest(sampleTree())
	if m.Routes != 5 || m.Pages != 4 {
		t.Errorf("manifest counts = %d routes, %d pages, want 5, 4", m.Routes, m.Pages)
	}

	empty := newManifest(nil)
	data, err := json.Marshal(empty)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"routes":0,"pages":0,"tree":[]}` {
		t.Errorf("empty manifest = %s", data)
	}
}

func TestEnvCredentials(t *testing.T) {
	lookup := func(env map[string]string) func(string) (string, bool) {
		return func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		}
	}

	if _, ok := envCredentials(lookup(nil)).(aws.AnonymousCredentials); !ok {
		t.Error("missing keys should give anonymous credentials")
	}

	provider := envCredentials(lookup(map[string]string{
		"AWS_ACCESS_KEY_ID":     "AKID",
		"AWS_SECRET_ACCESS_KEY": "SECRET",
		"AWS_SESSION_TOKEN":     "TOKEN",
	}))
	creds, err := provider.Retrieve(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if creds.AccessKeyID != "AKID" || creds.SecretAccessKey != "SECRET" || creds.SessionToken != "TOKEN" {
		t.Errorf("credentials = %+v", creds)
	}
}

// project creates a project directory with the given page files.
func project(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		p := filepath.Join(dir, config.DefaultPagesDir, f)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("<template/>"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoutesCommand(t *testing.T) {
	dir := project(t, "home.vue", "team/engineering.vue", "About.vue", "about.vue")

	stdout, stderr, err := execute(t, "-C", dir, "--no-color", "routes")
	if err != nil {
		t.Fatalf("routes: %v", err)
	}
	defer errors.EnableColors()

	for _, want := range []string{"Home  /", "About  /about", "Team  /team (section)", "└── Engineering  /team/engineering"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
	if !strings.Contains(stderr, "/about") {
		t.Errorf("duplicate warning missing from stderr:\n%s", stderr)
	}

	if _, _, err := execute(t, "-C", dir, "routes", "--strict"); err == nil {
		t.Error("--strict should fail on duplicate pages")
	}
}

func TestRoutesCommandMissingPages(t *testing.T) {
	_, _, err := execute(t, "-C", t.TempDir(), "routes")
	if errors.Code(err) != "E301" {
		t.Errorf("error = %v, want E301", err)
	}
}

func TestGenCommand(t *testing.T) {
	dir := project(t, "home.vue", "jobs/list.vue")
	out := filepath.Join(dir, "dist", "routes.json")

	if _, _, err := execute(t, "-C", dir, "gen", "--output", out); err != nil {
		t.Fatalf("gen: %v", err)
	}
	first, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	var m Manifest
	if err := json.Unmarshal(first, &m); err != nil {
		t.Fatalf("manifest is not JSON: %v", err)
	}
	if m.Routes != 3 || m.Pages != 2 {
		t.Errorf("manifest counts = %d routes, %d pages, want 3, 2", m.Routes, m.Pages)
	}

	if _, _, err := execute(t, "-C", dir, "gen", "--output", out); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("gen output is not deterministic")
	}
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	if _, _, err := execute(t, "-C", dir, "init", "--pages", "web/pages"); err != nil {
		t.Fatalf("init: %v", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("config.Load after init: %v", err)
	}
	if cfg.Pages.Dir != "web/pages" {
		t.Errorf("Pages.Dir = %q", cfg.Pages.Dir)
	}
	if cfg.Name != filepath.Base(dir) {
		t.Errorf("Name = %q, want %q", cfg.Name, filepath.Base(dir))
	}

	if _, _, err := execute(t, "-C", dir, "init"); err == nil {
		t.Error("init over an existing config should fail without --force")
	}
	if _, _, err := execute(t, "-C", dir, "init", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout) != version {
		t.Errorf("version = %q, want %q", stdout, version)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "--log-level", "loud", "version")
	if errors.Code(err) != "E204" {
		t.Errorf("error = %v, want E204", err)
	}
}
