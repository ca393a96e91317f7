package envbar

import (
	"context"
	"log/slog"
)

// LoggerExtractor returns a context extractor that exposes the active
// environment as a slog attribute for logger integration.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if env := FromContext(ctx); env != "" {
			return slog.String("env", string(env)), true
		}
		return slog.Attr{}, false
	}
}
