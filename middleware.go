package scopekit

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/scopekit-dev/scopekit/scope"
)

// Middleware is a function that wraps an http.Handler to add
// cross-cutting behavior. Middleware executes in FIFO order (first
// registered wraps first, onion model).
type Middleware func(next http.Handler) http.Handler

// ScopeExtractor extracts the granted scopes from an incoming request.
type ScopeExtractor func(r *http.Request) []string

// DefaultScopeHeader is the header the default extractor reads
// space-separated granted scopes from.
const DefaultScopeHeader = "X-Granted-Scopes"

// HeaderScopeExtractor returns an extractor reading space-separated
// scopes from the named header.
func HeaderScopeExtractor(header string) ScopeExtractor {
	return func(r *http.Request) []string {
		return strings.Fields(r.Header.Get(header))
	}
}

type middlewareConfig struct {
	log     *slog.Logger
	matcher scope.Matcher
	extract ScopeExtractor
}

// MiddlewareOption configures the scope-enforcement middleware.
type MiddlewareOption func(*middlewareConfig)

// WithMiddlewareLogger sets the logger for denial logging.
func WithMiddlewareLogger(logger *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if logger != nil {
			c.log = logger
		}
	}
}

// WithMiddlewareMatcher sets the scope comparison strategy used when
// judging requests.
func WithMiddlewareMatcher(m scope.Matcher) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.matcher = m
	}
}

// WithExtractor sets how granted scopes are read from a request.
func WithExtractor(fn ScopeExtractor) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.extract = fn
		}
	}
}

// RequireScopes returns a middleware that admits a request only when
// the scopes granted to it cover the route's requirement. Requests
// carrying no grants are answered with 401; requests whose grants fall
// short are answered with 403 and a WWW-Authenticate challenge naming
// the required scopes. A nil requirement leaves the handler unguarded.
func RequireScopes(req scope.Requirement, opts ...MiddlewareOption) Middleware {
	cfg := middlewareConfig{
		log:     slog.Default(),
		extract: HeaderScopeExtractor(DefaultScopeHeader),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if req == nil {
		cfg.log.Warn("scope middleware built without a requirement, handler left unguarded")
		return func(next http.Handler) http.Handler { return next }
	}

	desc := scope.NewDescriptor(req.RequirementKind(), "request grants")
	specOpts := []scope.SpecificationOption{scope.WithLogger(cfg.log)}
	if cfg.matcher != nil {
		specOpts = append(specOpts, scope.WithMatcher(cfg.matcher))
	}
	challenge := `Bearer error="insufficient_scope", scope="` + strings.Join(req.Scopes(), " ") + `"`

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			granted := cfg.extract(r)
			if len(granted) == 0 {
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "no scopes granted", http.StatusUnauthorized)
				return
			}

			spec := scope.NewSpecification(desc, granted, specOpts...)
			if spec.Test(req) == scope.ResultRejected {
				cfg.log.Warn("request rejected for insufficient scope",
					"path", r.URL.Path,
					"kind", req.RequirementKind().String(),
					"missing", spec.Missing(req))
				w.Header().Set("WWW-Authenticate", challenge)
				http.Error(w, "insufficient scope", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
