package pagesource

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/vango-dev/pagetree/pkg/routetree"
)

// Source discovers pages.
type Source interface {
	Scan(ctx context.Context) ([]routetree.PageEntry, error)
}

// Page is the component reference produced by discovery sources.
type Page struct {
	// Key is the file path relative to the pages directory, slash separated.
	Key string `json:"key"`

	// Origin names the source, e.g. "fs" or "s3://bucket".
	Origin string `json:"origin"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// ModTime is the last modification time.
	ModTime time.Time `json:"modTime"`
}

// ScanOptions configures which files are pages.
type ScanOptions struct {
	// Extension is the page file suffix (default ".vue").
	Extension string

	// Prefix is prepended to every key to form the raw path (default "./pages/").
	Prefix string
}

func (o ScanOptions) withDefaults() ScanOptions {
	if o.Extension == "" {
		o.Extension = routetree.DefaultExtension
	}
	if o.Prefix == "" {
		o.Prefix = routetree.DefaultPagesRoot
	}
	return o
}

// isPage reports whether key names a page file. Hidden and "_"-prefixed
// files are skipped, as is anything inside such a directory.
func (o ScanOptions) isPage(key string) bool {
	if !strings.HasSuffix(key, o.Extension) || len(key) == len(o.Extension) {
		return false
	}
	for _, seg := range strings.Split(key, "/") {
		if strings.HasPrefix(seg, ".") || strings.HasPrefix(seg, "_") {
			return false
		}
	}
	return true
}

func (o ScanOptions) entry(p *Page) routetree.PageEntry {
	return routetree.PageEntry{
		RawPath:   o.Prefix + path.Clean(p.Key),
		Component: p,
	}
}

// Static is a fixed list of pages.
type Static []routetree.PageEntry

// Scan returns a copy of the list.
func (s Static) Scan(ctx context.Context) ([]routetree.PageEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]routetree.PageEntry(nil), s...), nil
}
