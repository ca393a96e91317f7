package envbar

import "errors"

// Package-specific errors
var (
	// ErrParseConfig is returned when environment variables cannot be parsed
	// into the URL configuration struct.
	ErrParseConfig = errors.New("failed to parse environment URLs from process environment")

	// ErrInvalidMenuID is returned when the configured menu identifier
	// contains characters outside [a-zA-Z0-9_-].
	ErrInvalidMenuID = errors.New("invalid menu identifier")

	// ErrNoUserSource is returned when the user extractor has been explicitly
	// removed and the bar has no way to identify the current user.
	ErrNoUserSource = errors.New("no user source configured")
)
