package cli

import (
	"github.com/spf13/cobra"

	"github.com/quirkauto/advisorcopilot/pkg/httpserver"
	"github.com/quirkauto/advisorcopilot/pkg/logger"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Start the lookup API and health endpoints.

The server stops gracefully on SIGINT or SIGTERM.`,
		Example: `  # Serve the demo catalog on :8080
  copilot serve

  # Serve a Postgres catalog with Redis-backed history
  CATALOG_BACKEND=postgres PG_CONN_URL=postgres://localhost/parts \
  HISTORY_BACKEND=redis copilot serve --addr :9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := GetLogger(ctx)
			cfg := GetConfig(ctx)
			if addr != "" {
				cfg.HTTP.Addr = addr
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log.With(logger.Component("http"))))
			return srv.Run(ctx, a.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides HTTP_ADDR)")
	return cmd
}
