package cmd

import "github.com/spf13/cobra"

var flagField string

var depsCmd = &cobra.Command{
	Use:   "deps <tables path>",
	Short: "Show what a field reads, who reads it, and its recompute impact",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeps,
}

func init() {
	depsCmd.Flags().StringVar(&flagField, "field", "", "Field to inspect.")
	_ = depsCmd.MarkFlagRequired("field")
	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) error {
	a, err := newApp(args[0], "")
	if err != nil {
		return err
	}
	return a.Deps(cmd.Context(), flagTable, flagField)
}
