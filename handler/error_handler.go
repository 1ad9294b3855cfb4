package handler

import (
	"log/slog"
	"net/http"

	"github.com/quirkauto/advisorcopilot/pkg/logger"
)

func logLevel(status int) slog.Level {
	if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// NewErrorHandler logs err at warn for client errors and error for server
// errors, then renders it with JSONError. Request and session IDs reach the
// log through the logger's context extractors.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		resp := JSONError(err)
		status := StatusOf(err)
		r := ctx.Request()

		log.LogAttrs(r.Context(), logLevel(status), "request error",
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
