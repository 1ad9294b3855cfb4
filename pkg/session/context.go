package session

import (
	"context"
	"log/slog"
)

type sessionContextKey struct{}

// WithID adds a session ID to the context.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, id)
}

// IDFromContext retrieves the session ID from the context.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionContextKey{}).(string)
	return id, ok && id != ""
}

// LoggerExtractor logs the context session ID under "session_id".
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("session_id", id), true
		}
		return slog.Attr{}, false
	}
}
