// Package cli provides the command-line interface for the advisor copilot.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quirkauto/advisorcopilot/internal/app"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

type configKey struct{}

type loggerKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "copilot",
		Short: "Advisor copilot - VIN checks and parts lookup",
		Long: `copilot helps service advisors find parts for a vehicle.

It validates full and partial VINs, searches the parts catalog for a vehicle,
ranks the results by the advisor's keywords and serves the same lookup over HTTP.

Configuration comes from the environment and an optional .env file; flags
override the matching variables.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := app.NewLogger(cfg)
			if err != nil {
				return err
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, log)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	flags := rootCmd.PersistentFlags()
	flags.String("env", "", "Environment name (development|staging|production)")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("log-format", "", "Log format (text|json)")
	flags.String("catalog", "", "Catalog backend (memory|postgres|opensearch)")
	flags.String("history", "", "History backend (memory|redis)")
	flags.String("seed-file", "", "YAML catalog seed file")

	_ = rootCmd.RegisterFlagCompletionFunc("catalog", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{app.BackendMemory, app.BackendPostgres, app.BackendOpenSearch}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("history", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{app.BackendMemory, app.BackendRedis}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewLookupCommand())
	rootCmd.AddCommand(NewMigrateCommand())
	rootCmd.AddCommand(NewSeedCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// applyFlags copies explicitly set persistent flags over cfg.
func applyFlags(cmd *cobra.Command, cfg *app.Config) {
	flags := cmd.Flags()
	set := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	set("env", &cfg.Env)
	set("log-level", &cfg.Log.Level)
	set("log-format", &cfg.Log.Format)
	set("catalog", &cfg.CatalogBackend)
	set("history", &cfg.HistoryBackend)
	set("seed-file", &cfg.CatalogSeedFile)
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) app.Config {
	if c, ok := ctx.Value(configKey{}).(app.Config); ok {
		return c
	}
	return app.Config{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// openApp wires the application for commands that need the backends.
func openApp(cmd *cobra.Command) (*app.App, error) {
	ctx := cmd.Context()
	return app.New(ctx, GetConfig(ctx), GetLogger(ctx))
}
