package cmd

import (
	"manifest-validator/feature/manifest/schema"

	"github.com/spf13/cobra"
)

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of an install manifest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(schema.Document)
		return err
	},
}

func init() {
	RootCmd.AddCommand(schemaCmd)
}
