package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/vango-dev/pagetree/internal/errors"
	"github.com/vango-dev/pagetree/pkg/routetree"
	"golang.org/x/text/language"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "pagetree.json"

	// EnvFileName is the optional environment file read next to the config.
	EnvFileName = ".env"

	// DefaultAddr is the default navigation server address.
	DefaultAddr = ":8080"

	// DefaultPagesDir is the default local pages directory.
	DefaultPagesDir = "src/pages"

	// DefaultTokenParam is the query parameter carrying the frame token.
	DefaultTokenParam = "token"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "pagetree"

	// DefaultManifest is the default output of `pagetree gen`.
	DefaultManifest = "routes.json"

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = "10s"
)

// Source types.
const (
	SourceDir = "dir"
	SourceS3  = "s3"
)

// Config represents pagetree.json plus environment overrides.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Pages controls page discovery and route normalization.
	Pages PagesConfig `json:"pages"`

	// Source selects where pages are discovered.
	Source SourceConfig `json:"source"`

	// Server configures the navigation service.
	Server ServerConfig `json:"server"`

	// Auth configures the frame credential gate.
	Auth AuthConfig `json:"auth"`

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig `json:"metrics"`

	// Manifest is the output path of the generated route manifest.
	Manifest string `json:"manifest,omitempty"`

	configPath string
}

// PagesConfig controls page discovery.
type PagesConfig struct {
	// Dir is the local directory holding page files.
	Dir string `json:"dir,omitempty"`

	// Root is the raw-path prefix that maps to "/".
	Root string `json:"root,omitempty"`

	// Extension is the page file suffix.
	Extension string `json:"extension,omitempty"`

	// Home is the page served at "/".
	Home string `json:"home,omitempty"`

	// Locale enables locale-aware route ordering (BCP 47 tag).
	Locale string `json:"locale,omitempty"`
}

// SourceConfig selects the page source.
type SourceConfig struct {
	// Type is "dir" or "s3".
	Type string `json:"type,omitempty"`

	// S3 configures the S3 source.
	S3 S3Config `json:"s3,omitempty"`
}

// S3Config configures page discovery from a bucket.
type S3Config struct {
	Bucket       string `json:"bucket,omitempty"`
	Prefix       string `json:"prefix,omitempty"`
	Region       string `json:"region,omitempty"`
	Endpoint     string `json:"endpoint,omitempty"`
	UsePathStyle bool   `json:"usePathStyle,omitempty"`
}

// ServerConfig configures the navigation service.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty"`

	// Watch rebuilds the tree when page files change (dir source only).
	Watch bool `json:"watch,omitempty"`

	// ShutdownTimeout bounds graceful shutdown (e.g. "10s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty"`
}

// AuthConfig configures the frame credential gate.
type AuthConfig struct {
	// Required aborts startup when no token is configured.
	Required bool `json:"required"`

	// Token is the expected frame credential. Prefer the environment.
	Token string `json:"token,omitempty"`

	// Param is the query parameter carrying the token.
	Param string `json:"param,omitempty"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Pages: PagesConfig{
			Dir:       DefaultPagesDir,
			Root:      routetree.DefaultPagesRoot,
			Extension: routetree.DefaultExtension,
			Home:      routetree.DefaultHomePage,
		},
		Source: SourceConfig{Type: SourceDir},
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Auth: AuthConfig{
			Required: true,
			Param:    DefaultTokenParam,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Manifest: DefaultManifest,
	}
}

// Load reads pagetree.json from dir and applies the environment.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadOrDefault is Load, falling back to defaults when dir has no
// pagetree.json. The environment is applied either way.
func LoadOrDefault(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := New()
		cfg.configPath = path
		if err := cfg.loadEnv(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from path and applies the environment.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E201").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Run 'pagetree init' to create one")
		}
		return nil, errors.New("E202").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E202").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnv applies .env (if present) and the process environment.
func (c *Config) loadEnv() error {
	file := map[string]string{}
	envPath := filepath.Join(c.Dir(), EnvFileName)
	if _, err := os.Stat(envPath); err == nil {
		file, err = godotenv.Read(envPath)
		if err != nil {
			return errors.New("E205").WithDetail(envPath).Wrap(err)
		}
	}

	c.ApplyEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	})
	return nil
}

// ApplyEnv overrides settings from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				*dst = v
				return
			}
		}
	}

	set(&c.Auth.Token, "BACKEND_API_TOKEN", "VITE_BACKEND_API_TOKEN")
	set(&c.Server.Addr, "PAGETREE_ADDR")
	set(&c.Pages.Dir, "PAGETREE_PAGES_DIR")
	set(&c.Source.Type, "PAGETREE_SOURCE")
	set(&c.Source.S3.Bucket, "PAGETREE_S3_BUCKET")
	set(&c.Source.S3.Prefix, "PAGETREE_S3_PREFIX")
	set(&c.Source.S3.Endpoint, "PAGETREE_S3_ENDPOINT")
	set(&c.Source.S3.Region, "AWS_REGION", "AWS_DEFAULT_REGION")
}

// applyDefaults fills in empty fields after decoding.
func (c *Config) applyDefaults() {
	if c.Pages.Dir == "" {
		c.Pages.Dir = DefaultPagesDir
	}
	if c.Pages.Root == "" {
		c.Pages.Root = routetree.DefaultPagesRoot
	}
	if c.Pages.Extension == "" {
		c.Pages.Extension = routetree.DefaultExtension
	}
	if c.Pages.Home == "" {
		c.Pages.Home = routetree.DefaultHomePage
	}
	if c.Source.Type == "" {
		c.Source.Type = SourceDir
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Auth.Param == "" {
		c.Auth.Param = DefaultTokenParam
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Manifest == "" {
		c.Manifest = DefaultManifest
	}
}

// Validate checks settings that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Source.Type {
	case SourceDir:
	case SourceS3:
		if c.Source.S3.Bucket == "" {
			return errors.New("E204").
				WithDetail("source.type is s3 but source.s3.bucket is empty").
				WithSuggestion("Set source.s3.bucket or PAGETREE_S3_BUCKET")
		}
	default:
		return errors.New("E204").
			WithDetailf("source.type %q is not one of %q, %q", c.Source.Type, SourceDir, SourceS3)
	}
	if _, err := c.ShutdownTimeout(); err != nil {
		return errors.New("E204").WithDetail("server.shutdownTimeout: " + err.Error())
	}
	if _, err := c.TreeOptions(); err != nil {
		return err
	}
	return nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path. The token is never written.
func (c *Config) SaveTo(path string) error {
	out := *c
	out.Auth.Token = ""
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return errors.New("E202").Wrap(err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E202").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return "."
	}
	return filepath.Dir(c.configPath)
}

// PagesPath returns the absolute pages directory.
func (c *Config) PagesPath() string {
	if filepath.IsAbs(c.Pages.Dir) {
		return c.Pages.Dir
	}
	return filepath.Join(c.Dir(), c.Pages.Dir)
}

// ManifestPath returns the absolute manifest output path.
func (c *Config) ManifestPath() string {
	if filepath.IsAbs(c.Manifest) {
		return c.Manifest
	}
	return filepath.Join(c.Dir(), c.Manifest)
}

// ShutdownTimeout parses server.shutdownTimeout.
func (c *Config) ShutdownTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Server.ShutdownTimeout)
}

// TreeOptions returns the route tree options for the pages settings.
func (c *Config) TreeOptions() ([]routetree.Option, error) {
	opts := []routetree.Option{
		routetree.WithPagesRoot(c.Pages.Root),
		routetree.WithExtension(c.Pages.Extension),
		routetree.WithHomePage(c.Pages.Home),
	}
	if c.Pages.Locale != "" {
		tag, err := language.Parse(c.Pages.Locale)
		if err != nil {
			return nil, errors.New("E204").
				WithDetailf("pages.locale %q: %v", c.Pages.Locale, err)
		}
		opts = append(opts, routetree.WithCollation(tag))
	}
	return opts, nil
}

// Exists reports whether dir contains pagetree.json.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
