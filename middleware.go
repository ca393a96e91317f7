package envbar

import (
	"log/slog"
	"net/http"
	"strings"
)

// Middleware renders the bar into HTML responses. For each request it runs
// the access gate, resolves the active environment from the request host,
// stores it in the downstream context and splices the style tag plus the
// toolbar fragment into the response before </body>.
//
// Gate-failing requests, skip-path requests and non-HTML responses pass
// through byte-identical. The quiet paths are silent on purpose: nothing to
// show is the normal outcome in most deployments. Only a failed injection
// is logged.
func (b *Bar) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, skip := range b.skipPaths {
			if strings.HasPrefix(r.URL.Path, skip) {
				next.ServeHTTP(w, r)
				return
			}
		}
		if !b.allow(r.Context()) {
			next.ServeHTTP(w, r)
			return
		}

		res := Resolve(b.urls, r.Host)
		ctx := r.Context()
		if res.Active != "" {
			ctx = WithContext(ctx, res.Active)
		}

		menu := Compose(res, r.URL.Path, b.toolbarVisible(r), b.menuID)
		nonce := ""
		if b.nonce != nil {
			nonce = b.nonce(r)
		}
		fragment, err := renderToString(ctx, b.fragment(menu, nonce))
		if err != nil {
			b.logger.ErrorContext(ctx, "render toolbar fragment", slog.Any("error", err))
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		iw := newInjector(w, []byte(fragment))
		next.ServeHTTP(iw, r.WithContext(ctx))
		if err := iw.finish(); err != nil {
			b.logger.ErrorContext(ctx, "inject toolbar fragment", slog.Any("error", err))
		}
	})
}
