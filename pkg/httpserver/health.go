package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/quirkauto/advisorcopilot/pkg/logger"
)

// Probe is a named readiness dependency check, e.g. pg.Healthcheck(pool).
type Probe struct {
	Name  string
	Check func(context.Context) error
}

// DefaultProbeTimeout bounds a single readiness check.
const DefaultProbeTimeout = 2 * time.Second

// LivenessHandler always answers 200 "ALIVE".
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	}
}

// ReadinessHandler runs every probe with the request context and answers
// 200 "READY" or, on the first failure, 503 "NOT_READY".
func ReadinessHandler(log *slog.Logger, probes ...Probe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for _, p := range probes {
			if p.Check == nil {
				continue
			}
			ctx, cancel := context.WithTimeout(r.Context(), DefaultProbeTimeout)
			err := p.Check(ctx)
			cancel()
			if err != nil {
				if log != nil {
					log.ErrorContext(r.Context(), "readiness check failed",
						logger.Component(p.Name),
						logger.Error(err),
					)
				}
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
