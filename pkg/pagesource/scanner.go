package pagesource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/vango-dev/pagetree/pkg/routetree"
)

// ErrNoPagesDir is returned when the scanned directory does not exist.
var ErrNoPagesDir = errors.New("pages directory not found")

// Scanner discovers page files in a file system.
type Scanner struct {
	fsys fs.FS
	dir  string
	opts ScanOptions
}

// NewScanner creates a scanner for the pages under dir in fsys.
// Use "." to scan the whole file system.
func NewScanner(fsys fs.FS, dir string, opts ScanOptions) *Scanner {
	if dir == "" {
		dir = "."
	}
	return &Scanner{fsys: fsys, dir: path.Clean(dir), opts: opts.withDefaults()}
}

// Scan walks the directory and returns one entry per page file, sorted by
// raw path.
func (s *Scanner) Scan(ctx context.Context) ([]routetree.PageEntry, error) {
	if _, err := fs.Stat(s.fsys, s.dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoPagesDir, s.dir)
		}
		return nil, err
	}

	var entries []routetree.PageEntry

	err := fs.WalkDir(s.fsys, s.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if p == s.dir {
			return nil
		}
		rel := p
		if s.dir != "." {
			rel = p[len(s.dir)+1:]
		}

		if d.IsDir() {
			if base := path.Base(rel); base[0] == '.' || base[0] == '_' {
				return fs.SkipDir
			}
			return nil
		}

		if !s.opts.isPage(rel) {
			return nil
		}

		page := &Page{Key: rel, Origin: "fs"}
		if info, err := d.Info(); err == nil {
			page.Size = info.Size()
			page.ModTime = info.ModTime()
		}
		entries = append(entries, s.opts.entry(page))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", s.dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RawPath < entries[j].RawPath
	})
	return entries, nil
}
