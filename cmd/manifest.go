package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(manifestCmd)
	manifestCmd.Flags().StringVar(&manifestFormat, "format", "", "Manifest format: json or yaml. Defaults to APPHOST_MANIFEST_FORMAT.")
	manifestCmd.Flags().StringVar(&outputPath, "output-path", "", "Write the manifest to this path instead of stdout")
	manifestCmd.Flags().StringVar(&bucket, "bucket", "", "Also upload the manifest to this S3 bucket")
}

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "manifest - Render the declared resources as a deployment manifest.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHost(cmd.Context(), "manifest", false)
	},
}
