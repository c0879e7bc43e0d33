package cmd

import (
	"github.com/spf13/cobra"
)

var useTUI bool

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().BoolVar(&useTUI, "tui", false, "use the TUI for diff")
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "diff - Show the Azure resources that would be created or updated.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHost(cmd.Context(), "diff", useTUI)
	},
}
