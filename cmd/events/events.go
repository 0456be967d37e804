// Package events implements the events subcommand: recluster the existing
// observation table without rerunning photo resolution.
package events

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/willclo1/SpyPointAnalysis/internal/conf"
	"github.com/willclo1/SpyPointAnalysis/internal/events"
	"github.com/willclo1/SpyPointAnalysis/internal/observation"
)

// Command creates the events command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Cluster the observation table into animal visit events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvents(cmd, settings)
		},
	}

	setupFlags(cmd, settings)
	return cmd
}

func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().Float64Var(&settings.Events.GapMinutes, "gap", settings.Events.GapMinutes, "Largest gap in minutes still counted as the same visit")
	cmd.Flags().IntVar(&settings.Events.MaxMembers, "max-members", settings.Events.MaxMembers, "Most photos kept per event")
	cmd.Flags().StringVar(&settings.Output.File.EventsJSON, "json", settings.Output.File.EventsJSON, "Path for the events JSON output")
}

func runEvents(cmd *cobra.Command, settings *conf.Settings) error {
	loc, err := settings.Location()
	if err != nil {
		return err
	}

	tablePath := filepath.Join(settings.Output.File.Path, "observations.csv")
	table, err := observation.Load(tablePath, loc)
	if err != nil {
		return err
	}
	if table.Len() == 0 {
		return fmt.Errorf("no observations found at %s, run analyze first", tablePath)
	}

	summary := events.Cluster(table.Records(), events.Config{
		GapMinutes: settings.Events.GapMinutes,
		MaxMembers: settings.Events.MaxMembers,
	})

	if path := settings.Output.File.EventsJSON; path != "" {
		if err := events.WriteJSON(path, summary.Events); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d events from %d observations\n", len(summary.Events), table.Len())
	if summary.SkippedNoTimestamp > 0 {
		fmt.Fprintf(out, "%d observations skipped, no timestamp\n", summary.SkippedNoTimestamp)
	}
	if summary.SkippedOther > 0 {
		fmt.Fprintf(out, "%d observations skipped, unresolvable label\n", summary.SkippedOther)
	}
	for i := range summary.Events {
		e := &summary.Events[i]
		fmt.Fprintf(out, "%s  %-22s %-10s %3d photos  %s\n",
			e.Start.Format("2006-01-02 15:04"), e.Species, e.Camera, e.Count, e.FirstFrame)
	}
	return nil
}
