package routetree

import (
	"strings"
	"unicode/utf8"

	"github.com/vango-dev/pagetree/pkg/routepath"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casers carry state and must not be shared between goroutines.
func lower(s string) string { return cases.Lower(language.Und).String(s) }

func upper(s string) string { return cases.Upper(language.Und).String(s) }

// NormalizePath converts a raw page path to its route key.
//
//	./pages/home.vue        → /
//	./pages/Jobs/List.vue   → /jobs/list
//	./pages/jobs/[id].vue   → /jobs/[id]
func NormalizePath(raw string, opts ...Option) string {
	return normalize(raw, resolve(opts))
}

func normalize(raw string, o Options) string {
	p := strings.ReplaceAll(raw, "\\", "/")

	if o.PagesRoot != "" && strings.HasPrefix(p, o.PagesRoot) {
		p = "/" + p[len(o.PagesRoot):]
	} else if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	if o.Extension != "" {
		p = strings.TrimSuffix(p, o.Extension)
	}

	p = lower(p)

	if o.HomePage != "" && p == "/"+lower(o.HomePage) {
		return "/"
	}
	return p
}

// Title derives a route title from the last segment of a route key.
// The segment is lower-cased, hyphens become spaces and each word gets an
// upper-case first letter. Keys without a last segment are titled "Home".
func Title(path string) string {
	seg, ok := routepath.Last(path)
	if !ok {
		seg = HomeTitle
	}
	words := strings.Split(lower(seg), "-")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError {
			continue
		}
		words[i] = upper(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
