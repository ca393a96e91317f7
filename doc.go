// Package envbar renders an admin-toolbar indicator showing which deployment
// environment (development, testing, acceptance, production) is serving the
// current request, plus links that jump to the same path on the other
// configured environments.
//
// Each environment optionally carries a base URL, read from the process
// environment variables URL_DEVELOPMENT, URL_TESTING, URL_ACCEPTANCE and
// URL_PRODUCTION. On every request the bar compares the request host against
// the configured URLs (substring containment), marks the first match as the
// active environment and offers the remaining environments as switch links.
// A static stylesheet color-codes the indicator dot: green for development
// and testing, orange for acceptance, red for production.
//
// The bar only activates for authenticated users, optionally restricted to
// an allow-list of usernames. Everything else that could go wrong at request
// time — no URLs configured, no matching environment, hidden toolbar — is a
// silent no-op: the corresponding piece of output is simply suppressed.
//
// # Usage
//
// Activate the bar once at startup and mount the middleware:
//
//	bar, err := envbar.Enable(envbar.WithAllowedUsers("admin"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r := chi.NewRouter()
//	r.Use(authMiddleware) // stores the username via envbar.WithUser
//	r.Use(bar.Middleware)
//
// The middleware injects the style tag and the toolbar fragment into HTML
// responses before </body> and leaves every other response untouched. Hosts
// that draw their own toolbar append the composed entries instead:
//
//	bar.Attach(r.Context(), myToolbar, r)
//
// and templ layouts can embed the fragment directly:
//
//	@bar.Component(r)
//
// Downstream handlers read the active environment from the request context:
//
//	if envbar.IsProduction(r.Context()) {
//	    // production-specific behaviour
//	}
//
// The pure core is exported for non-HTTP hosts: Resolve matches a host
// against a URLs value and Compose turns the resolution into menu nodes.
//
// # Error Handling
//
// Only construction can fail: Enable returns ErrParseConfig when the
// environment variables cannot be parsed, ErrInvalidMenuID for a malformed
// menu identifier and ErrNoUserSource when the user extractor was removed.
// All request-time helpers are silent; missing values suppress output
// instead of raising errors.
package envbar
