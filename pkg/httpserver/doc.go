// Package httpserver runs an http.Handler with sane timeouts, SIGINT/SIGTERM
// handling and graceful shutdown, and provides liveness and readiness probe
// handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    return err
//	}
package httpserver
