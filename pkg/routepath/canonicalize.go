package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Result is a canonicalized request path.
type Result struct {
	// Path is the canonical path without the query string.
	Path string

	// Query is the raw query string without the leading "?".
	Query string

	// Changed reports whether Path differs from the input path.
	Changed bool
}

// Errors returned for paths that must not reach the router.
var (
	ErrInvalidPath          = errors.New("invalid path")
	ErrBackslashInPath      = errors.New("path contains backslash")
	ErrNullByteInPath       = errors.New("path contains null byte")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot      = errors.New("path escapes root via ..")
)

// Canonicalize normalizes a request path:
//   - leading slash added, repeated slashes collapsed
//   - "." segments dropped and ".." segments resolved
//   - trailing slash removed (except for "/")
//
// Backslashes, NUL bytes, malformed percent escapes and ".." above the root
// are rejected. The query string is split off and returned untouched.
func Canonicalize(input string) (Result, error) {
	if input == "" {
		return Result{Path: "/", Changed: true}, nil
	}

	p, query, _ := strings.Cut(input, "?")

	if strings.Contains(p, "\\") {
		return Result{}, ErrBackslashInPath
	}
	if strings.Contains(p, "\x00") || strings.Contains(strings.ToUpper(p), "%00") {
		return Result{}, ErrNullByteInPath
	}
	if strings.Contains(p, "%") && !validEscapes(p) {
		return Result{}, ErrInvalidPercentEscape
	}

	var out []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(out) == 0 {
				return Result{}, ErrPathEscapesRoot
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}

	canon := Join(out...)
	return Result{Path: canon, Query: query, Changed: canon != p}, nil
}

// CanonicalizeNav canonicalizes a navigation target. Only site-relative
// paths are accepted so a redirect can never leave the frame.
func CanonicalizeNav(target string) (string, error) {
	if strings.HasPrefix(target, "//") || strings.Contains(target, "://") || !strings.HasPrefix(target, "/") {
		return "", ErrInvalidPath
	}
	res, err := Canonicalize(target)
	if err != nil {
		return "", err
	}
	if res.Query != "" {
		return res.Path + "?" + res.Query, nil
	}
	return res.Path, nil
}

// DecodeSegments splits a canonical path and percent-decodes each segment.
func DecodeSegments(p string) ([]string, error) {
	segs := Segments(p)
	for i, seg := range segs {
		dec, err := url.PathUnescape(seg)
		if err != nil {
			return nil, ErrInvalidPercentEscape
		}
		segs[i] = dec
	}
	return segs, nil
}

func validEscapes(p string) bool {
	for i := 0; i < len(p); i++ {
		if p[i] != '%' {
			continue
		}
		if i+2 >= len(p) || !isHex(p[i+1]) || !isHex(p[i+2]) {
			return false
		}
		i += 2
	}
	return true
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
