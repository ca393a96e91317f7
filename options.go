package envbar

import (
	"context"
	"log/slog"
	"net/http"
)

// UserExtractor reports the current authenticated username. The second
// return value is false for unauthenticated requests. It collapses the
// host's "is authenticated" and "current username" collaborators into one
// function so the gate stays testable without a host runtime.
type UserExtractor func(ctx context.Context) (string, bool)

// VisibilityExtractor reports whether the host's toolbar is currently
// visible for the request. When it returns false the child entries are
// suppressed but the parent indicator is still rendered.
type VisibilityExtractor func(r *http.Request) bool

// NonceExtractor returns the CSP nonce to carry on the injected style tag,
// or "" when the host does not use nonces.
type NonceExtractor func(r *http.Request) string

// config holds bar configuration.
type config struct {
	urls         *URLs
	allowedUsers []string
	user         UserExtractor
	userSet      bool
	visible      VisibilityExtractor
	nonce        NonceExtractor
	menuID       string
	skipPaths    []string
	logger       *slog.Logger
}

// Option configures the bar.
type Option func(*config)

// WithAllowedUsers restricts the bar to the given usernames. An empty list
// allows every authenticated user.
func WithAllowedUsers(usernames ...string) Option {
	return func(c *config) {
		c.allowedUsers = usernames
	}
}

// WithUserExtractor sets a custom user source. Passing nil removes the
// default context-based source and makes Enable fail with ErrNoUserSource.
func WithUserExtractor(extractor UserExtractor) Option {
	return func(c *config) {
		c.user = extractor
		c.userSet = true
	}
}

// WithVisibilityExtractor sets a custom toolbar-visibility source.
// The default treats the toolbar as always visible.
func WithVisibilityExtractor(extractor VisibilityExtractor) Option {
	return func(c *config) {
		c.visible = extractor
	}
}

// WithNonceExtractor sets the CSP nonce source for the injected style tag.
func WithNonceExtractor(extractor NonceExtractor) Option {
	return func(c *config) {
		c.nonce = extractor
	}
}

// WithURLs bypasses environment-variable loading and uses the given URLs.
func WithURLs(urls URLs) Option {
	return func(c *config) {
		c.urls = &urls
	}
}

// WithMenuID overrides the toolbar identifier and CSS class prefix.
func WithMenuID(id string) Option {
	return func(c *config) {
		c.menuID = id
	}
}

// WithSkipPaths sets path prefixes the middleware passes through untouched.
func WithSkipPaths(paths ...string) Option {
	return func(c *config) {
		c.skipPaths = paths
	}
}

// WithLogger sets a custom logger for the bar.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
