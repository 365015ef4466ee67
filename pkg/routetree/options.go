package routetree

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	// DefaultPagesRoot is the raw-path prefix that maps to "/".
	DefaultPagesRoot = "./pages/"

	// DefaultExtension is the page file suffix stripped from raw paths.
	DefaultExtension = ".vue"

	// DefaultHomePage is the top-level page name served at "/".
	DefaultHomePage = "home"

	// HomeTitle is the title of routes without a last segment.
	HomeTitle = "Home"
)

// Options configures path normalization and ordering.
type Options struct {
	// PagesRoot is stripped from the front of every raw path.
	PagesRoot string

	// Extension is stripped from the end of every raw path.
	Extension string

	// HomePage names the page that collapses to "/".
	HomePage string

	// Collation, when set, orders routes with locale-aware comparison
	// instead of byte order.
	Collation *language.Tag
}

// Option configures Build and NormalizePath.
type Option func(*Options)

// WithPagesRoot sets the raw-path prefix mapped to "/".
func WithPagesRoot(root string) Option {
	return func(o *Options) {
		o.PagesRoot = root
	}
}

// WithExtension sets the page file suffix.
func WithExtension(ext string) Option {
	return func(o *Options) {
		o.Extension = ext
	}
}

// WithHomePage sets the page name served at "/".
func WithHomePage(name string) Option {
	return func(o *Options) {
		o.HomePage = name
	}
}

// WithCollation orders sibling routes using the collation rules of tag.
// A prefix still sorts before its extensions, so parents keep preceding
// their children.
func WithCollation(tag language.Tag) Option {
	return func(o *Options) {
		o.Collation = &tag
	}
}

func defaultOptions() Options {
	return Options{
		PagesRoot: DefaultPagesRoot,
		Extension: DefaultExtension,
		HomePage:  DefaultHomePage,
	}
}

func resolve(opts []Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// compare returns the path ordering for o.
func (o Options) compare() func(a, b string) int {
	if o.Collation == nil {
		return strings.Compare
	}
	c := collate.New(*o.Collation)
	return c.CompareString
}
