package envbar

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Environment represents a deployment environment tier.
type Environment string

const (
	// Development for development environment.
	Development Environment = "development"
	// Testing for testing environment.
	Testing Environment = "testing"
	// Acceptance for acceptance environment.
	Acceptance Environment = "acceptance"
	// Production for production environment.
	Production Environment = "production"
)

// All returns the four environments in their fixed declaration order.
func All() []Environment {
	return []Environment{Development, Testing, Acceptance, Production}
}

// Valid reports whether e is one of the four known environments.
func (e Environment) Valid() bool {
	switch e {
	case Development, Testing, Acceptance, Production:
		return true
	}
	return false
}

// Title returns the capitalized display name, e.g. "Development".
func (e Environment) Title() string {
	if e == "" {
		return ""
	}
	// cases.Caser is stateful, create one per call.
	return cases.Title(language.English).String(string(e))
}

// Color returns the indicator color for the environment tier: green for
// development and testing, orange for acceptance, red for production.
func (e Environment) Color() string {
	switch e {
	case Acceptance:
		return "#ffb900"
	case Production:
		return "#dc3232"
	default:
		return "#46b450"
	}
}

// Entry pairs an environment with its configured base URL.
type Entry struct {
	Env Environment
	URL string
}

// URLs holds the optional base URL for each environment. Values are read
// from the process environment by LoadURLs; empty entries are valid and are
// simply excluded from rendering. Immutable after construction.
type URLs struct {
	Development string `env:"URL_DEVELOPMENT"`
	Testing     string `env:"URL_TESTING"`
	Acceptance  string `env:"URL_ACCEPTANCE"`
	Production  string `env:"URL_PRODUCTION"`
}

// Get returns the configured URL for the given environment, or "".
func (u URLs) Get(env Environment) string {
	switch env {
	case Development:
		return u.Development
	case Testing:
		return u.Testing
	case Acceptance:
		return u.Acceptance
	case Production:
		return u.Production
	}
	return ""
}

// Entries returns the non-empty entries in declaration order.
func (u URLs) Entries() []Entry {
	entries := make([]Entry, 0, 4)
	for _, env := range All() {
		if url := u.Get(env); url != "" {
			entries = append(entries, Entry{Env: env, URL: url})
		}
	}
	return entries
}

// IsZero reports whether no environment has a URL configured.
func (u URLs) IsZero() bool {
	return u == URLs{}
}
