package envbar

import "strings"

// Resolution is the outcome of matching a request host against the
// configured environment URLs.
type Resolution struct {
	// Active is the first environment (in declaration order) whose URL
	// matched, or "" when nothing matched.
	Active Environment

	// Title is the capitalized display name of Active, or "" when nothing
	// matched.
	Title string

	// Others holds the non-empty entries remaining after the matched URL
	// values were removed, in declaration order.
	Others []Entry
}

// Resolve determines the active environment for the given request host.
//
// A configured URL matches when it contains the host as a substring; this is
// neither equality nor a prefix match, so "example.com" matches both
// "https://example.com" and "https://example.com.evil.org". An empty host
// matches every configured URL.
//
// Exclusion from Others is by URL value, not by environment key: when two
// environments share the identical URL and it matches, both disappear from
// Others even though only one is reported as Active.
func Resolve(urls URLs, host string) Resolution {
	entries := urls.Entries()

	matched := make(map[string]struct{}, len(entries))
	var active Environment
	for _, e := range entries {
		if strings.Contains(e.URL, host) {
			if active == "" {
				active = e.Env
			}
			matched[e.URL] = struct{}{}
		}
	}

	others := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := matched[e.URL]; ok {
			continue
		}
		others = append(others, e)
	}

	return Resolution{
		Active: active,
		Title:  active.Title(),
		Others: others,
	}
}
