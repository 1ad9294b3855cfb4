package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quirkauto/advisorcopilot/internal/app"
	"github.com/quirkauto/advisorcopilot/pkg/catalog"
	"github.com/quirkauto/advisorcopilot/pkg/config"
	"github.com/quirkauto/advisorcopilot/pkg/opensearch"
	"github.com/quirkauto/advisorcopilot/pkg/pg"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Prepare the catalog storage",
		Long: `Apply schema migrations for the postgres catalog, or create the
indices of the opensearch catalog. The memory catalog needs no preparation.`,
		Example: `  CATALOG_BACKEND=postgres PG_CONN_URL=postgres://localhost/parts copilot migrate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := GetConfig(ctx)
			log := GetLogger(ctx)

			switch cfg.CatalogBackend {
			case app.BackendPostgres:
				var pgCfg pg.Config
				if err := config.Load(&pgCfg); err != nil {
					return err
				}
				pool, err := pg.Connect(ctx, pgCfg)
				if err != nil {
					return err
				}
				defer pool.Close()
				if err := pg.Migrate(ctx, pool, catalog.Migrations, catalog.MigrationsDir, pgCfg, log); err != nil {
					return err
				}

			case app.BackendOpenSearch:
				var osCfg opensearch.Config
				if err := config.Load(&osCfg); err != nil {
					return err
				}
				client, err := opensearch.New(ctx, osCfg)
				if err != nil {
					return err
				}
				if err := catalog.NewOpenSearch(client, cfg.Index).EnsureIndices(ctx); err != nil {
					return err
				}

			default:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "catalog backend %q has nothing to migrate\n", cfg.CatalogBackend)
				return nil
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s catalog is up to date\n", cfg.CatalogBackend)
			return nil
		},
	}
}
