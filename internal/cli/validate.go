package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quirkauto/advisorcopilot/pkg/vin"
)

// ErrInvalidVIN is returned by validate when the VIN is rejected.
var ErrInvalidVIN = errors.New("invalid VIN")

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate <vin>",
		Short: "Check a full or partial VIN",
		Long: `Check a VIN the way the lookup form does.

Use * for characters you could not read. A VIN without wildcards must have
all 17 characters. The command exits non-zero when the VIN is rejected.`,
		Example: `  copilot validate 1C4HJXDG9MW123456
  copilot validate '1C4HJXDG*' --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := vin.Check(args[0])
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else if res.Valid {
				_, _ = fmt.Fprintf(out, "%s: valid (%d known, %d wildcards)\n", res.Normalized, res.Known, res.Wildcards)
			} else {
				_, _ = fmt.Fprintf(out, "%s: %s\n", res.Normalized, res.Reason)
			}

			if !res.Valid {
				return fmt.Errorf("%w: %s", ErrInvalidVIN, res.Reason)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}
