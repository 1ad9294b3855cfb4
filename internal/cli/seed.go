package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quirkauto/advisorcopilot/internal/app"
	"github.com/quirkauto/advisorcopilot/pkg/catalog"
)

// ErrEphemeralCatalog is returned when seeding a catalog that does not outlive the process.
var ErrEphemeralCatalog = errors.New("the memory catalog is not persistent; set CATALOG_BACKEND to postgres or opensearch")

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Load catalog data from a YAML file",
		Long: `Import vehicles, parts, accessory kits, supersession chains and cross
references from a YAML seed file into the configured catalog backend.

Existing rows with the same part number are replaced.`,
		Example: `  CATALOG_BACKEND=postgres PG_CONN_URL=postgres://localhost/parts copilot seed ./catalog.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())
			if cfg.CatalogBackend == app.BackendMemory {
				return ErrEphemeralCatalog
			}

			seed, err := catalog.LoadSeedFile(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Seed(cmd.Context(), seed); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d parts, %d accessory kits, %d vehicles\n",
				len(seed.Parts), len(seed.Upsell), len(seed.Vehicles))
			return nil
		},
	}
}
