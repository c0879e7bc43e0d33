package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/santiago-labs/apphost/lib/ymlparser"
	"github.com/spf13/cobra"
)

var writePath string

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&writePath, "write", "", "Also write the declarations to a new YAML file at this path")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list - Print the declared resources in declaration order.",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBuilder()
		if err != nil {
			return err
		}
		decls := b.Declarations()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tKIND\tAZURE TYPE")
		for _, d := range decls {
			spec, _ := d.Kind.Spec()
			fmt.Fprintf(w, "%s\t%s\t%s\n", d.ResourceName, d.Kind, spec.ARMType)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if writePath != "" {
			return ymlparser.WriteDeclarations(writePath, decls)
		}
		return nil
	},
}
