// Package cli implements the tablestate command line: the page command
// renders one page of filtered records, and browse opens the interactive
// table.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/tablestate/internal/config"
	"github.com/rshade/tablestate/internal/logging"
	"github.com/rshade/tablestate/pkg/version"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

type configKey struct{}

// contextWithConfig stores the effective configuration in ctx.
func contextWithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFromContext returns the configuration loaded by the root command,
// or defaults when the command runs outside of it.
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return config.New()
}

// NewRootCmd creates the root Cobra command for the tablestate CLI.
// It loads configuration, wires up logging and tracing, and registers the
// page and browse subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
	)

	cmd := &cobra.Command{
		Use:           "tablestate",
		Short:         "Filter, page, and select rows of record files",
		Long:          "tablestate: Filter, paginate, and select rows from JSON or YAML record files",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			load, path := config.LoadRequired, configPath
			if path == "" {
				load, path = config.Load, config.DefaultPath()
			}
			cfg, err := load(ctx, path)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cmd.SetContext(contextWithConfig(ctx, cfg))

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf("tablestate {{.Version}} (commit %s, built %s)\n",
		version.GetGitCommit(), version.GetBuildDate()))
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to config file (default $TABLESTATE_HOME/config.yaml or ~/.tablestate/config.yaml)")
	cmd.AddCommand(NewPageCmd(), NewBrowseCmd())

	return cmd
}

const rootCmdExample = `  # Show the first page of a JSON file
  tablestate page --data customers.json

  # Filter by field and search text, then jump to page 3
  tablestate page --data customers.json --filter status=active --search smith --page 3

  # Select every matching row and print the result as YAML
  tablestate page --data a.json --data b.yaml --filter region=emea --select-matching --output yaml

  # Browse records interactively
  tablestate browse --data customers.json`
