package copilot

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quirkauto/advisorcopilot/handler"
	"github.com/quirkauto/advisorcopilot/pkg/clientip"
	"github.com/quirkauto/advisorcopilot/pkg/environment"
	"github.com/quirkauto/advisorcopilot/pkg/httpserver"
	"github.com/quirkauto/advisorcopilot/pkg/ratelimiter"
	"github.com/quirkauto/advisorcopilot/pkg/requestid"
	"github.com/quirkauto/advisorcopilot/pkg/session"
)

// Mountable is a module that serves its routes under a prefix.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures the application router. API is required; the
// rest is optional.
type RouterOptions struct {
	API         Mountable
	Sessions    *session.Manager
	Environment environment.Environment
	Logger      *slog.Logger
	// Probes back /health/ready, e.g. pg.Healthcheck or redis.Healthcheck.
	Probes []httpserver.Probe
	// RateLimiter throttles /api per client address when set.
	RateLimiter *ratelimiter.Limiter
}

// Router builds the HTTP surface: health endpoints at the root and the
// lookup API under /api.
//
//	svc := copilot.New(cat, store)
//	r := copilotmod.Router(copilotmod.RouterOptions{
//	    API:      copilotmod.NewAPI(svc, handler.NewErrorHandler(log)),
//	    Sessions: session.NewFromConfig(sessionCfg),
//	    Logger:   log,
//	})
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	if opts.Environment != "" {
		r.Use(environment.Middleware(opts.Environment))
	}

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(opts.Logger, opts.Probes...))

	r.Route("/api", func(api chi.Router) {
		if opts.RateLimiter != nil {
			api.Use(ratelimiter.Middleware(opts.RateLimiter, clientip.Key,
				ratelimiter.WithLogger(opts.Logger),
				ratelimiter.WithDeniedHandler(http.HandlerFunc(tooManyRequests)),
			))
		}
		if opts.Sessions != nil {
			api.Use(opts.Sessions.Middleware)
		}
		api.Mount("/", opts.API.Handle())
	})

	return r
}

var errTooManyLookups = handler.ErrTooManyRequests.WithMessage("Too many lookups, try again shortly")

func tooManyRequests(w http.ResponseWriter, r *http.Request) {
	_ = handler.JSONError(errTooManyLookups).Render(w, r)
}
