package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// ErrMissingToken is returned when authorization is required but no token is
// configured.
var ErrMissingToken = errors.New("frame auth: token is not configured")

// AuthScheme is the Authorization header scheme used by the host frame.
const AuthScheme = "bga"

// DefaultTokenParam is the query parameter checked for the token.
const DefaultTokenParam = "token"

// Failure reasons reported to OnFailure and in 401 bodies.
const (
	ReasonMissingToken = "missing_token"
	ReasonInvalidToken = "invalid_token"
)

// AuthConfig configures FrameAuth.
type AuthConfig struct {
	// Token is the expected credential.
	Token string

	// Param is the query parameter carrying the token (default: "token").
	Param string

	// OnFailure is called for every rejected request.
	OnFailure func(r *http.Request, reason string)
}

// Validate reports ErrMissingToken when no token is configured.
func (c AuthConfig) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	return nil
}

// FrameAuth rejects requests that do not carry the configured token. With an
// empty Token every request is rejected.
func FrameAuth(cfg AuthConfig) func(http.Handler) http.Handler {
	if cfg.Param == "" {
		cfg.Param = DefaultTokenParam
	}
	want := []byte(cfg.Token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := requestToken(r, cfg.Param)

			reason := ""
			switch {
			case got == "":
				reason = ReasonMissingToken
			case len(want) == 0 || subtle.ConstantTimeCompare([]byte(got), want) != 1:
				reason = ReasonInvalidToken
			}

			if reason != "" {
				if cfg.OnFailure != nil {
					cfg.OnFailure(r, reason)
				}
				unauthorized(w, reason)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// requestToken extracts the token from the query string or the
// Authorization header. The query parameter wins when both are present.
func requestToken(r *http.Request, param string) string {
	if tok := r.URL.Query().Get(param); tok != "" {
		return tok
	}
	scheme, tok, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, AuthScheme) {
		return ""
	}
	return strings.TrimSpace(tok)
}

func unauthorized(w http.ResponseWriter, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", AuthScheme)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":  "unauthorized",
		"reason": reason,
	})
}
