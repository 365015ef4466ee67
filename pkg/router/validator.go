package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/pagetree/pkg/routepath"
	"github.com/vango-dev/pagetree/pkg/routetree"
)

// ValidationError describes one questionable input found by Validate.
type ValidationError struct {
	// Type is the error category
	Type ValidationErrorType `json:"type"`

	// Message is the human-readable error message
	Message string `json:"message"`

	// Files are the raw page paths involved
	Files []string `json:"files"`

	// Path is the route key in question
	Path string `json:"path"`

	// Details contains additional error-specific information
	Details string `json:"details,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ValidationErrorType categorizes validation errors.
type ValidationErrorType string

const (
	// ErrorDuplicateRoute indicates several pages normalize to the same key.
	// Example: About.vue and about.vue both resolve to /about
	ErrorDuplicateRoute ValidationErrorType = "DUPLICATE_ROUTE"

	// ErrorContainerCollision indicates a page occupies a position that would
	// otherwise be a synthetic section container.
	// Example: team.vue next to team/engineering.vue
	ErrorContainerCollision ValidationErrorType = "CONTAINER_COLLISION"

	// ErrorParamConflict indicates sibling dynamic segments with different names.
	// Example: jobs/[id].vue and jobs/[slug].vue
	ErrorParamConflict ValidationErrorType = "PARAM_CONFLICT"
)

// Report collects the findings of Validate. The builder never fails, so a
// report is informational.
type Report struct {
	Errors []ValidationError `json:"errors"`
}

// OK reports whether nothing was found.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Count returns the number of findings of type t.
func (r *Report) Count(t ValidationErrorType) int {
	n := 0
	for _, e := range r.Errors {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Err returns the findings as an error, or nil when there are none.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return &MultiValidationError{Errors: r.Errors}
}

// MultiValidationError wraps multiple validation errors.
type MultiValidationError struct {
	Errors []ValidationError
}

func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d route validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Validate checks page entries for inputs that Build resolves silently.
// Findings are ordered by route key.
func Validate(entries []routetree.PageEntry, opts ...routetree.Option) *Report {
	byPath := make(map[string][]string)
	var keys []string
	for _, e := range entries {
		key := routetree.NormalizePath(e.RawPath, opts...)
		if _, ok := byPath[key]; !ok {
			keys = append(keys, key)
		}
		byPath[key] = append(byPath[key], e.RawPath)
	}
	sort.Strings(keys)

	report := &Report{}
	validateDuplicates(report, keys, byPath)
	validateContainers(report, keys, byPath)
	validateParams(report, keys, byPath)

	sort.SliceStable(report.Errors, func(i, j int) bool {
		return report.Errors[i].Path < report.Errors[j].Path
	})
	return report
}

func validateDuplicates(report *Report, keys []string, byPath map[string][]string) {
	for _, key := range keys {
		files := byPath[key]
		if len(files) <= 1 {
			continue
		}
		report.Errors = append(report.Errors, ValidationError{
			Type:    ErrorDuplicateRoute,
			Message: fmt.Sprintf("Duplicate route detected at %s", key),
			Path:    key,
			Files:   files,
			Details: fmt.Sprintf("%s wins", files[0]),
		})
	}
}

func validateContainers(report *Report, keys []string, byPath map[string][]string) {
	nested := make(map[string][]string)
	for _, key := range keys {
		for _, dir := range routepath.Ancestors(key) {
			if _, isPage := byPath[dir]; isPage {
				nested[dir] = append(nested[dir], key)
			}
		}
	}

	for _, key := range keys {
		below := nested[key]
		if len(below) == 0 {
			continue
		}
		report.Errors = append(report.Errors, ValidationError{
			Type:    ErrorContainerCollision,
			Message: fmt.Sprintf("Page %s is also the section for %d nested routes", key, len(below)),
			Path:    key,
			Files:   byPath[key],
			Details: fmt.Sprintf("Nested: %s", strings.Join(below, ", ")),
		})
	}
}

func validateParams(report *Report, keys []string, byPath map[string][]string) {
	type slot struct {
		parent string
		kind   segmentKind
	}
	names := make(map[slot][]string)
	files := make(map[slot][]string)
	var order []slot

	for _, key := range keys {
		last, ok := routepath.Last(key)
		if !ok {
			continue
		}
		kind, name := parseSegment(last)
		if kind == segmentStatic {
			continue
		}
		s := slot{parent: routepath.Parent(key), kind: kind}
		if _, seen := names[s]; !seen {
			order = append(order, s)
		}
		names[s] = append(names[s], name)
		files[s] = append(files[s], byPath[key]...)
	}

	for _, s := range order {
		if len(names[s]) <= 1 {
			continue
		}
		parent := s.parent
		if parent == "" {
			parent = "/"
		}
		report.Errors = append(report.Errors, ValidationError{
			Type:    ErrorParamConflict,
			Message: fmt.Sprintf("Conflicting parameter names at %s", parent),
			Path:    parent,
			Files:   files[s],
			Details: fmt.Sprintf("Names: %s; only %s is reachable", strings.Join(names[s], " vs "), names[s][0]),
		})
	}
}

// FormatValidationError formats a validation error for display.
//
//	ERROR: Duplicate route detected at /about
//	  ./pages/About.vue → /about
//	  ./pages/about.vue → /about
func FormatValidationError(err ValidationError) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "ERROR: %s\n", err.Message)
	for _, file := range err.Files {
		fmt.Fprintf(&sb, "  %s → %s\n", file, err.Path)
	}
	if err.Details != "" {
		fmt.Fprintf(&sb, "  Details: %s\n", err.Details)
	}

	return sb.String()
}
