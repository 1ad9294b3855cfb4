package ratelimiter

import (
	"hash/fnv"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxKeyLength bounds keys built by Composite; longer keys are hashed.
const maxKeyLength = 64

// KeyFunc extracts the bucket key from a request. An empty key skips limiting.
type KeyFunc func(r *http.Request) string

// Composite joins the non-empty keys of several key functions with ":".
// Keys longer than 64 bytes are replaced by their FNV-1a hash.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}
		if len(parts) == 0 {
			return ""
		}

		combined := strings.Join(parts, ":")
		if len(combined) <= maxKeyLength {
			return combined
		}
		h := fnv.New64a()
		_, _ = h.Write([]byte(combined))
		return strconv.FormatUint(h.Sum64(), 36)
	}
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareOptions)

type middlewareOptions struct {
	denied http.Handler
	log    *slog.Logger
	now    func() time.Time
}

// WithDeniedHandler renders rejected requests. Rate limit headers are set
// before it runs. The default writes a plain 429.
func WithDeniedHandler(h http.Handler) MiddlewareOption {
	return func(o *middlewareOptions) {
		if h != nil {
			o.denied = h
		}
	}
}

// WithLogger logs store failures.
func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(o *middlewareOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMiddlewareClock replaces time.Now for Retry-After.
func WithMiddlewareClock(now func() time.Time) MiddlewareOption {
	return func(o *middlewareOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// Middleware limits requests per key. When the store fails the request is
// let through and the failure is logged.
func Middleware(l *Limiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	o := middlewareOptions{
		denied: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
		log: slog.New(slog.DiscardHandler),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := l.Allow(r.Context(), key)
			if err != nil {
				o.log.WarnContext(r.Context(), "rate limit check failed", slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				// Round up so clients never retry early.
				wait := result.RetryAfter(o.now())
				secs := int((wait + time.Second - 1) / time.Second)
				h.Set("Retry-After", strconv.Itoa(max(1, secs)))
				o.denied.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
