package cmd

import "github.com/spf13/cobra"

var checkCmd = &cobra.Command{
	Use:   "check <tables path>",
	Short: "Validate every formula in the table definitions",
	Long: `Check parses each formula, resolves its field references, and registers it
in the dependency graph, reporting syntax errors, references to unknown
fields, and circular references. Exits non-zero if any table fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp(args[0], "")
	if err != nil {
		return err
	}
	return a.Check(cmd.Context())
}
