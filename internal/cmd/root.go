// Package cmd defines the formula CLI command tree.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gridbase/formula/internal/app"
)

var (
	flagLogLevel  string
	flagLogFormat string
	flagTable     string
)

var rootCmd = &cobra.Command{
	Use:   "formula",
	Short: "Validate and evaluate table formula fields",
	Long: `formula works with table definition files (.hcl) whose fields may carry
formula expressions over other fields. It validates formulas against the
dependency graph, shows what a field change forces to recompute, and
evaluates records offline.`,
	SilenceUsage: true,
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info",
		"Logging level: debug, info, warn, or error.")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text",
		"Log output format: text or json.")
	rootCmd.PersistentFlags().StringVar(&flagTable, "table", "",
		"Table to operate on; optional when the definitions hold exactly one.")
}

// newApp builds an App from the shared flags and the command's tables path.
func newApp(tablesPath, recordsPath string) (*app.App, error) {
	cfg, err := app.NewConfig(app.Config{
		TablesPath:  tablesPath,
		RecordsPath: recordsPath,
		LogLevel:    flagLogLevel,
		LogFormat:   flagLogFormat,
	})
	if err != nil {
		return nil, err
	}
	return app.NewApp(os.Stdout, os.Stderr, cfg), nil
}
