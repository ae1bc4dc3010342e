package cmd

import "github.com/spf13/cobra"

var orderCmd = &cobra.Command{
	Use:   "order <tables path>",
	Short: "Print a safe evaluation order for a table's formula fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrder,
}

func init() {
	rootCmd.AddCommand(orderCmd)
}

func runOrder(cmd *cobra.Command, args []string) error {
	a, err := newApp(args[0], "")
	if err != nil {
		return err
	}
	return a.Order(cmd.Context(), flagTable)
}
