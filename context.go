package envbar

import "context"

type envContextKey struct{}

// WithContext adds the active environment to context.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, envContextKey{}, env)
}

// FromContext retrieves the active environment from context.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(envContextKey{}).(Environment)
	return env
}

// IsProduction checks if the environment from context is production.
func IsProduction(ctx context.Context) bool {
	return FromContext(ctx) == Production
}

// IsDevelopment checks if the environment from context is development.
func IsDevelopment(ctx context.Context) bool {
	return FromContext(ctx) == Development
}

type userContextKey struct{}

// WithUser adds the authenticated username to context. It is the default
// user source for the access gate: hosts whose auth middleware stores the
// username this way need no extractor wiring.
func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userContextKey{}, username)
}

// UserFromContext retrieves the authenticated username from context.
// The second return value is false when no user was stored.
func UserFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	username, ok := ctx.Value(userContextKey{}).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
