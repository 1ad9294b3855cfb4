package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/quirkauto/advisorcopilot/svc/copilot"
)

// NewLookupCommand creates the lookup command.
func NewLookupCommand() *cobra.Command {
	var (
		req     copilot.Request
		session string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Find parts for a vehicle",
		Long: `Look up parts for a vehicle identified by VIN or by make and model.

Keywords in --query rank the candidate parts; parts matching none of the
keywords are dropped unless nothing matches at all.`,
		Example: `  # By make and model
  copilot lookup --make Jeep --model Wrangler --year 2018 --query "clip for trunk latch"

  # By VIN, as JSON
  copilot lookup --vin 1C4HJXDG9MW123456 --query "brake pads" --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if session == "" {
				session = uuid.NewString()
			}
			res, err := a.Service.Lookup(cmd.Context(), session, req)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.VIN, "vin", "", "Full or partial VIN (use * for unknown characters)")
	f.StringVar(&req.Make, "make", "", "Vehicle make")
	f.StringVar(&req.Model, "model", "", "Vehicle model")
	f.IntVar(&req.Year, "year", 0, "Model year")
	f.StringVarP(&req.Query, "query", "q", "", "Keywords describing the part")
	f.StringVar(&session, "session", "", "History session ID (random when empty)")
	f.BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func printResult(w io.Writer, res *copilot.Result) error {
	label := res.Vehicle.Label()
	if label == "" {
		label = "unknown vehicle"
	}
	_, _ = fmt.Fprintf(w, "Vehicle: %s\n", label)
	if res.VIN != nil && !res.VIN.Empty() {
		_, _ = fmt.Fprintf(w, "VIN:     %s\n", res.VIN.Normalized)
	}
	if !res.Matched && len(res.Parts) > 0 {
		_, _ = fmt.Fprintln(w, "No part matched the query; showing all candidates.")
	}
	_, _ = fmt.Fprintln(w)

	if len(res.Parts) == 0 {
		_, _ = fmt.Fprintln(w, "No parts found.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "PART NUMBER\tTITLE\tOEM\tPRICE\tETA")
		for _, p := range res.Parts {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\n", p.PartNumber, p.Title, p.OEM, p.Price, eta(p.ETADays))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if res.Supersession != nil {
		_, _ = fmt.Fprintf(w, "\nSupersession: %s (order %s)\n", strings.Join(res.Supersession.Chain, " -> "), res.Supersession.Current)
	}
	if len(res.CrossReferences) > 0 {
		_, _ = fmt.Fprintln(w, "\nCross references:")
		for _, x := range res.CrossReferences {
			_, _ = fmt.Fprintf(w, "  %s (%s) %s\n", x.PartNumber, x.Type, x.Note)
		}
	}
	if len(res.Upsell) > 0 {
		_, _ = fmt.Fprintln(w, "\nAlso consider:")
		for _, p := range res.Upsell {
			_, _ = fmt.Fprintf(w, "  %s  %s  %.2f\n", p.PartNumber, p.Title, p.Price)
		}
	}
	return nil
}

func eta(days int) string {
	switch days {
	case 0:
		return "in stock"
	case 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}
