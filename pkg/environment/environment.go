package environment

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// Environment names the deployment the process runs in.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
	Staging     Environment = "staging"
)

// Config reads the environment name from APP_ENV.
type Config struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Environment returns the parsed APP_ENV value.
func (c Config) Environment() Environment {
	return Parse(c.Env)
}

// Parse maps an environment name or its short alias (dev, stage, prod) to an
// Environment. Unknown names are returned lowercased as-is.
func Parse(s string) Environment {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "dev", string(Development):
		return Development
	case "stage", string(Staging):
		return Staging
	case "prod", string(Production):
		return Production
	default:
		return Environment(v)
	}
}

func (e Environment) IsProduction() bool  { return e == Production }
func (e Environment) IsDevelopment() bool { return e == Development }
func (e Environment) IsStaging() bool     { return e == Staging }

type contextKey struct{}

// WithContext stores env in ctx.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext returns the environment stored in ctx, or "" when there is none.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// Middleware attaches env to every request context.
func Middleware(env Environment) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), env)))
		})
	}
}

// LoggerExtractor logs the context environment under "env".
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if env := FromContext(ctx); env != "" {
			return slog.String("env", string(env)), true
		}
		return slog.Attr{}, false
	}
}
