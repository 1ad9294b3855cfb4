package clientip

import (
	"context"
	"log/slog"
	"net/http"
)

type ctxKey struct{}

// WithIP stores ip in ctx.
func WithIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKey{}, ip)
}

// FromContext returns the address stored by Middleware, or "".
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ctxKey{}).(string)
	return ip
}

// Middleware resolves the client address once per request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithIP(r.Context(), FromRequest(r))))
	})
}

// Key is a rate limit key function: the address resolved by Middleware,
// falling back to the request itself.
func Key(r *http.Request) string {
	if ip := FromContext(r.Context()); ip != "" {
		return ip
	}
	return FromRequest(r)
}

// LoggerExtractor adds "client_ip" to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if ip := FromContext(ctx); ip != "" {
			return slog.String("client_ip", ip), true
		}
		return slog.Attr{}, false
	}
}
