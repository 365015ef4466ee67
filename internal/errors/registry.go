package errors

import "sort"

// Template defines a registered error code.
type Template struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://pagetree.vango.dev/docs/errors/"

var registry = map[string]Template{
	// Config (E2xx)
	"E201": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "pagetree looks for pagetree.json in the project directory.",
		DocURL:   docBase + "E201",
	},
	"E202": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "pagetree.json could not be read or is not valid JSON.",
		DocURL:   docBase + "E202",
	},
	"E203": {
		Category: CategoryConfig,
		Message:  "Frame credential missing",
		Detail:   "The navigation service refuses to start without the frame token when auth is required.",
		DocURL:   docBase + "E203",
	},
	"E204": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		DocURL:   docBase + "E204",
	},
	"E205": {
		Category: CategoryConfig,
		Message:  "Environment file could not be loaded",
		DocURL:   docBase + "E205",
	},

	// Source (E3xx)
	"E301": {
		Category: CategorySource,
		Message:  "Pages directory not found",
		DocURL:   docBase + "E301",
	},
	"E302": {
		Category: CategorySource,
		Message:  "Page scan failed",
		DocURL:   docBase + "E302",
	},
	"E303": {
		Category: CategorySource,
		Message:  "Listing pages from S3 failed",
		DocURL:   docBase + "E303",
	},

	// Server (E4xx)
	"E401": {
		Category: CategoryServer,
		Message:  "Navigation server failed",
		DocURL:   docBase + "E401",
	},
	"E402": {
		Category: CategoryServer,
		Message:  "Page watcher failed",
		DocURL:   docBase + "E402",
	},

	// CLI (E5xx)
	"E501": {
		Category: CategoryCLI,
		Message:  "Unknown output format",
		DocURL:   docBase + "E501",
	},
}

// Codes returns all registered codes in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Lookup returns the template for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
