// Package analyze implements the analyze subcommand: run the full photo
// pipeline and persist the results.
package analyze

import (
	"github.com/spf13/cobra"

	"github.com/willclo1/SpyPointAnalysis/internal/analysis"
	"github.com/willclo1/SpyPointAnalysis/internal/conf"
	"github.com/willclo1/SpyPointAnalysis/internal/datastore"
	"github.com/willclo1/SpyPointAnalysis/internal/logging"
)

// Command creates the analyze command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Resolve classifier output into observations and events",
		Long:  "Reads the classifier predictions and OCR stamps, resolves each photo into an observation row, merges the rows into the observation table, and clusters them into events.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, settings)
		},
	}

	setupFlags(cmd, settings)
	return cmd
}

func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().BoolVar(&settings.Output.File.UpdateExisting, "update-existing", settings.Output.File.UpdateExisting, "Refresh rows already present in the observation table")
	cmd.Flags().StringVarP(&settings.Output.File.Path, "output", "o", settings.Output.File.Path, "Directory for observation table output")
}

func runAnalyze(cmd *cobra.Command, settings *conf.Settings) error {
	logger := logging.ForService("analyze")

	analyzer, err := analysis.New(settings)
	if err != nil {
		return err
	}
	result, err := analyzer.Run(cmd.Context())
	if err != nil {
		return err
	}

	if store := datastore.New(settings); store != nil {
		if err := store.Open(); err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("failed to close datastore", "error", err)
			}
		}()

		if err := store.SaveObservations(result.Records); err != nil {
			return err
		}
		if err := store.SaveEvents(result.Events.Events); err != nil {
			return err
		}
	}

	logger.Info("analyze finished",
		"rows", len(result.Records),
		"added", result.Added,
		"updated", result.Updated,
		"events", len(result.Events.Events))
	return nil
}
