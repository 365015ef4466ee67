// Package errors provides coded, actionable errors for pagetree.
//
// Every error carries a code (e.g. "E203") that maps to a short message, a
// longer explanation and a documentation link. Call sites add what they know:
//
//	err := errors.New("E203").
//	    WithDetail("auth.required is true but no token is configured").
//	    WithSuggestion("Set BACKEND_API_TOKEN in .env or the environment")
//
//	fmt.Println(err.Format())
//	// ERROR E203: Frame credential missing
//	//
//	//   auth.required is true but no token is configured
//	//
//	//   Hint: Set BACKEND_API_TOKEN in .env or the environment
//
// Errors wrap their cause, so errors.Is and errors.As see through them.
//
// # Error Categories
//
//   - config: pagetree.json and environment problems (E2xx)
//   - source: page discovery failures (E3xx)
//   - server: navigation service failures (E4xx)
//   - cli: command usage errors (E5xx)
package errors
