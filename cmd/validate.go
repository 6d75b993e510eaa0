package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"manifest-validator/core/config"
	"manifest-validator/core/logger"
	"manifest-validator/feature/manifest"
	"manifest-validator/feature/manifest/sources"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errNotClean makes the process exit with status 1 when violations were found.
var errNotClean = errors.New("manifest is not clean")

var (
	objectFlag  string
	storedFlag  string
	offlineFlag bool
	schemaFlag  bool
	jsonFlag    bool
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path|-]",
	Short: "Validate an install manifest",
	Long: `Decodes the manifest strictly, checks that every file without a url is covered by
overrides for every OS and store platform, and probes every referenced URL.

The manifest is read from a path, from stdin ("-"), from the configured bucket (--object)
or from the install_manifests table (--stored). Exits with status 1 unless the report is clean.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		svc, err := newService(cfg, logg, serviceDeps{storage: objectFlag != "", database: storedFlag != ""})
		if err != nil {
			return err
		}

		src, err := selectSource(svc, args)
		if err != nil {
			return err
		}

		logg.Info("Validating manifest", zap.String("source", src.Describe()), zap.Bool("offline", offlineFlag))
		report, err := svc.ValidateSource(ctx, src, manifest.Options{Offline: offlineFlag, Schema: schemaFlag})
		if err != nil {
			return err
		}

		if jsonFlag {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		} else {
			logReport(logg, report)
			printSummary(cmd, report, time.Since(startTime))
		}

		if !report.Clean {
			return fmt.Errorf("%w: %d problem(s) in %s", errNotClean, report.Problems(), report.Source)
		}
		return nil
	},
}

func selectSource(svc *manifest.Service, args []string) (sources.Source, error) {
	selected := 0
	if len(args) == 1 {
		selected++
	}
	if objectFlag != "" {
		selected++
	}
	if storedFlag != "" {
		selected++
	}
	if selected != 1 {
		return nil, errors.New("exactly one of a path, --object or --stored is required")
	}

	switch {
	case objectFlag != "":
		return svc.BucketSource(objectFlag)
	case storedFlag != "":
		return svc.StoredSource(storedFlag)
	default:
		return sources.NewFileSource(args[0]), nil
	}
}

func logReport(logg *zap.Logger, report *manifest.Report) {
	for _, u := range report.Unconsumed {
		logg.Warn("Unexpected keys", zap.Stringer("path", u.Path), zap.Strings("keys", u.Keys))
	}
	for _, v := range report.Coverage {
		fields := []zap.Field{
			zap.String("kind", string(v.Kind)),
			zap.Stringer("path", v.Path),
			zap.String("mod", v.Mod),
		}
		if v.OS != "" {
			fields = append(fields, zap.String("os", string(v.OS)))
		}
		if v.Steam != nil {
			fields = append(fields, zap.Bool("steam", *v.Steam))
		}
		logg.Warn(v.Message, fields...)
	}
	for _, v := range report.Reachability {
		logg.Warn("Unreachable URL",
			zap.String("kind", string(v.Kind)),
			zap.Stringer("path", v.Target.Path),
			zap.String("label", v.Target.Label),
			zap.String("url", v.Target.URL),
			zap.Int("status", v.Status),
			zap.Int("attempts", v.Attempts),
			zap.String("error", v.Err),
		)
	}
	for _, f := range report.Schema {
		logg.Info("Schema finding", zap.String("path", f.Path), zap.String("message", f.Message))
	}
}

func printSummary(cmd *cobra.Command, report *manifest.Report, elapsed time.Duration) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\n=== Manifest Validation ===")
	fmt.Fprintf(out, "Source: %s\n", report.Source)
	fmt.Fprintf(out, "Unconsumed Keys: %d\n", len(report.Unconsumed))
	fmt.Fprintf(out, "Coverage Violations: %d\n", len(report.Coverage))
	if report.Offline {
		fmt.Fprintln(out, "Reachability: skipped (offline)")
	} else {
		fmt.Fprintf(out, "Reachability Violations: %d\n", len(report.Reachability))
	}
	if report.Schema != nil {
		fmt.Fprintf(out, "Schema Findings: %d (advisory)\n", len(report.Schema))
	}
	fmt.Fprintf(out, "Clean: %t\n", report.Clean)
	fmt.Fprintf(out, "Execution Time: %s\n", elapsed.String())
}

func init() {
	validateCmd.Flags().StringVar(&objectFlag, "object", "", "Validate this object from the configured bucket")
	validateCmd.Flags().StringVar(&storedFlag, "stored", "", "Validate the manifest with this name from the install_manifests table")
	validateCmd.Flags().BoolVar(&offlineFlag, "offline", false, "Skip the reachability check")
	validateCmd.Flags().BoolVar(&schemaFlag, "schema", false, "Also lint the manifest against the JSON Schema (advisory)")
	validateCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the report as JSON")
	RootCmd.AddCommand(validateCmd)
}
