package cmd

import "github.com/spf13/cobra"

var flagRecords string

var evalCmd = &cobra.Command{
	Use:   "eval <tables path>",
	Short: "Compute formula fields for a records fixture and print the rows",
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().StringVar(&flagRecords, "records", "", "YAML records fixture to evaluate.")
	_ = evalCmd.MarkFlagRequired("records")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	a, err := newApp(args[0], flagRecords)
	if err != nil {
		return err
	}
	return a.Eval(cmd.Context(), flagTable)
}
