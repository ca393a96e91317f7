package envbar

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"slices"

	"github.com/a-h/templ"
)

const menuIDPattern = "^[a-zA-Z0-9_-]+$"

var validMenuIDRegex = regexp.MustCompile(menuIDPattern)

// Bar is the environment indicator and switcher. It is immutable after
// Enable; all per-request work is stateless.
type Bar struct {
	urls         URLs
	allowedUsers []string
	user         UserExtractor
	visible      VisibilityExtractor
	nonce        NonceExtractor
	menuID       string
	skipPaths    []string
	logger       *slog.Logger
}

// Enable constructs the bar. It is the single activation entry point: the
// returned Bar exposes Middleware for HTML injection, Attach for host-owned
// toolbars and Component for templ layouts.
//
// Unless WithURLs is given, the four URL_* environment variables are loaded
// here; a parse failure aborts construction with ErrParseConfig. By default
// the username is read from the request context (WithUser), the toolbar is
// treated as visible and logs are discarded.
func Enable(opts ...Option) (*Bar, error) {
	cfg := &config{
		user:   UserFromContext,
		menuID: DefaultMenuID,
		logger: newNoopLogger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.userSet && cfg.user == nil {
		return nil, ErrNoUserSource
	}
	if !validMenuIDRegex.MatchString(cfg.menuID) {
		return nil, ErrInvalidMenuID
	}

	if cfg.urls == nil {
		urls, err := LoadURLs()
		if err != nil {
			return nil, err
		}
		cfg.urls = &urls
	}

	return &Bar{
		urls:         *cfg.urls,
		allowedUsers: cfg.allowedUsers,
		user:         cfg.user,
		visible:      cfg.visible,
		nonce:        cfg.nonce,
		menuID:       cfg.menuID,
		skipPaths:    cfg.skipPaths,
		logger:       cfg.logger,
	}, nil
}

// allow runs the access gate: the user must be authenticated, and when an
// allow-list is configured the username must be on it. Failure is silent.
func (b *Bar) allow(ctx context.Context) bool {
	username, ok := b.user(ctx)
	if !ok {
		return false
	}
	if len(b.allowedUsers) == 0 {
		return true
	}
	return slices.Contains(b.allowedUsers, username)
}

// URLs returns the configured environment URLs.
func (b *Bar) URLs() URLs {
	return b.urls
}

// toolbarVisible reports the host toolbar visibility for the request.
func (b *Bar) toolbarVisible(r *http.Request) bool {
	if b.visible == nil {
		return true
	}
	return b.visible(r)
}

// Attach composes the menu for the request and appends its nodes, parent
// first, to a host-owned toolbar. It reports whether anything was appended:
// false when the gate failed or no environment URL is configured.
func (b *Bar) Attach(ctx context.Context, tb Toolbar, r *http.Request) bool {
	if !b.allow(ctx) {
		return false
	}
	menu := Compose(Resolve(b.urls, r.Host), r.URL.Path, b.toolbarVisible(r), b.menuID)
	if menu == nil {
		return false
	}
	for _, node := range menu.Nodes() {
		tb.Append(node)
	}
	return true
}

// Component returns a gate-aware templ component for the request, suitable
// for embedding in templ layouts. It renders the style tag plus the toolbar
// fragment, or nothing at all when the gate fails.
func (b *Bar) Component(r *http.Request) templ.Component {
	if !b.allow(r.Context()) {
		return templ.NopComponent
	}
	res := Resolve(b.urls, r.Host)
	menu := Compose(res, r.URL.Path, b.toolbarVisible(r), b.menuID)
	nonce := ""
	if b.nonce != nil {
		nonce = b.nonce(r)
	}
	return b.fragment(menu, nonce)
}
