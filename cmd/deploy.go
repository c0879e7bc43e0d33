package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(deployCmd)
	deployCmd.Flags().BoolVar(&useTUI, "tui", false, "use the TUI for deploy")
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "deploy - Create or update the resource group and every declared resource in Azure.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHost(cmd.Context(), "deploy", useTUI)
	},
}
