// Package fetch implements the fetch subcommand: pull new photos from the
// configured sources into the local images directory.
package fetch

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/willclo1/SpyPointAnalysis/internal/conf"
	"github.com/willclo1/SpyPointAnalysis/internal/imagefetch"
	"github.com/willclo1/SpyPointAnalysis/internal/spypoint"
)

// Command creates the fetch command.
func Command(settings *conf.Settings) *cobra.Command {
	var startDate, endDate string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download new camera photos",
		Long:  "Downloads new photos from the SpyPoint cloud and/or an FTP drop folder into the images directory. Without date flags only today's photos are considered.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, settings, startDate, endDate)
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD) of the fetch window")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD) of the fetch window")
	return cmd
}

func runFetch(cmd *cobra.Command, settings *conf.Settings, startDate, endDate string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	ranAny := false

	if settings.Fetch.SpyPoint.Enabled {
		ranAny = true
		loc, err := settings.Location()
		if err != nil {
			return err
		}
		window, err := spypoint.ResolveWindow(startDate, endDate, time.Now().In(loc))
		if err != nil {
			return err
		}

		client := spypoint.New(&settings.Fetch.SpyPoint)
		fetcher := spypoint.NewFetcher(client, &settings.Fetch.SpyPoint, settings.Input.ImagesDir)
		summary, err := fetcher.Fetch(ctx, window)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "spypoint: %d downloaded, %d existing, %d outside window, %d without date\n",
			summary.Downloaded, summary.SkippedExisting, summary.SkippedOutsideWindow, summary.SkippedNoDate)
	}

	if settings.Fetch.FTP.Enabled {
		ranAny = true
		fetcher := imagefetch.NewFTPFetcher(&settings.Fetch.FTP, settings.Input.ImagesDir)
		result, err := fetcher.Fetch(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "ftp: %d downloaded, %d existing, %d failed\n",
			result.Downloaded, result.Skipped, result.Failed)
	}

	if !ranAny {
		return fmt.Errorf("no fetch source enabled, set fetch.spypoint.enabled or fetch.ftp.enabled")
	}
	return nil
}
