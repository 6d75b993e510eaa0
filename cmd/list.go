package cmd

import (
	"fmt"

	"manifest-validator/core/config"
	"manifest-validator/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var listStoredFlag bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List published manifests",
	Long:  `Lists the manifest objects under the configured bucket prefix, or the rows of the install_manifests table with --stored.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		svc, err := newService(cfg, logg, serviceDeps{storage: !listStoredFlag, database: listStoredFlag})
		if err != nil {
			return err
		}

		var names []string
		if listStoredFlag {
			names, err = svc.ListStored(ctx)
		} else {
			names, err = svc.ListBucket(ctx)
		}
		if err != nil {
			return err
		}

		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		logg.Debug("Listed manifests", zap.Int("count", len(names)), zap.Bool("stored", listStoredFlag))
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listStoredFlag, "stored", false, "List the install_manifests table instead of the bucket")
	RootCmd.AddCommand(listCmd)
}
