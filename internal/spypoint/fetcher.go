package spypoint

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/willclo1/SpyPointAnalysis/internal/conf"
	"github.com/willclo1/SpyPointAnalysis/internal/logging"
)

// pollLimit is the lookback window requested from the photo feed. The date
// window filters harder than this anyway.
const pollLimit = 250

// Window is an inclusive local-date range for photo fetching.
type Window struct {
	Start time.Time
	End   time.Time
}

// ResolveWindow builds the fetch window from optional YYYY-MM-DD bounds.
// With neither bound the window is today only; a lone start runs to today; a
// lone end is that single day. The conservative defaults keep a routine run
// from backfilling months of photos.
func ResolveWindow(start, end string, now time.Time) (Window, error) {
	today := truncateToDay(now)

	parse := func(s string) (time.Time, error) {
		t, err := time.ParseInLocation("2006-01-02", s, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
		}
		return t, nil
	}

	w := Window{Start: today, End: today}
	switch {
	case start == "" && end == "":
		return w, nil
	case start != "" && end == "":
		s, err := parse(start)
		if err != nil {
			return Window{}, err
		}
		w.Start = s
		return w, nil
	case start == "" && end != "":
		e, err := parse(end)
		if err != nil {
			return Window{}, err
		}
		w.Start, w.End = e, e
		return w, nil
	}

	s, err := parse(start)
	if err != nil {
		return Window{}, err
	}
	e, err := parse(end)
	if err != nil {
		return Window{}, err
	}
	if s.After(e) {
		return Window{}, fmt.Errorf("start date %s is after end date %s", start, end)
	}
	return Window{Start: s, End: e}, nil
}

// Contains reports whether the instant falls on a day inside the window,
// judged in the window's timezone.
func (w Window) Contains(t time.Time) bool {
	d := truncateToDay(t.In(w.Start.Location()))
	return !d.Before(w.Start) && !d.After(w.End)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Summary reports what a fetch run did and why photos were passed over.
type Summary struct {
	Inspected            int
	Downloaded           int
	SkippedExisting      int
	SkippedOutsideWindow int
	SkippedNoDate        int
}

// Fetcher downloads new photos from the SpyPoint cloud into the local camera
// folder layout.
type Fetcher struct {
	client    *Client
	settings  *conf.SpyPointSettings
	imagesDir string
	logger    *slog.Logger
}

// NewFetcher returns a fetcher using the given client.
func NewFetcher(client *Client, settings *conf.SpyPointSettings, imagesDir string) *Fetcher {
	return &Fetcher{
		client:    client,
		settings:  settings,
		imagesDir: imagesDir,
		logger:    logging.ForService("spypoint"),
	}
}

// folderName maps a camera to its local folder, preferring the configured
// friendly name, then the camera's own name, then its id.
func (f *Fetcher) folderName(cam Camera) string {
	if name, ok := f.settings.Cameras[cam.ID]; ok {
		return SafeName(name)
	}
	if cam.Name != "" {
		return SafeName(cam.Name)
	}
	return SafeName(cam.ID)
}

// Fetch logs in, walks every camera's feed, and downloads photos inside the
// window that are not already on disk. The run stops once MaxPerRun new
// photos have landed.
func (f *Fetcher) Fetch(ctx context.Context, window Window) (Summary, error) {
	var summary Summary

	if err := f.client.Login(ctx); err != nil {
		return summary, err
	}

	cameras, err := f.client.Cameras(ctx)
	if err != nil {
		return summary, err
	}
	f.logger.Info("fetching photos",
		"cameras", len(cameras),
		"window_start", window.Start.Format("2006-01-02"),
		"window_end", window.End.Format("2006-01-02"))

	for _, cam := range cameras {
		if err := f.fetchCamera(ctx, cam, window, &summary); err != nil {
			return summary, err
		}
		if f.limitReached(&summary) {
			f.logger.Info("per-run download cap reached", "max", f.settings.MaxPerRun)
			break
		}
	}

	f.logger.Info("fetch complete",
		"inspected", summary.Inspected,
		"downloaded", summary.Downloaded,
		"skipped_existing", summary.SkippedExisting,
		"skipped_outside_window", summary.SkippedOutsideWindow,
		"skipped_no_date", summary.SkippedNoDate)
	return summary, nil
}

func (f *Fetcher) fetchCamera(ctx context.Context, cam Camera, window Window, summary *Summary) error {
	folder := f.folderName(cam)
	photos, err := f.client.Photos(ctx, cam.ID, pollLimit)
	if err != nil {
		return err
	}

	localDir := filepath.Join(f.imagesDir, folder)
	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", localDir, err)
	}

	for _, photo := range photos {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary.Inspected++

		if !photo.HasTaken {
			if f.settings.SkipIfNoDate {
				summary.SkippedNoDate++
				continue
			}
		} else if !window.Contains(photo.Taken) {
			summary.SkippedOutsideWindow++
			continue
		}

		localPath := filepath.Join(localDir, photo.Filename)
		if _, err := os.Stat(localPath); err == nil {
			summary.SkippedExisting++
			continue
		}

		data, err := f.client.Download(ctx, photo)
		if err != nil {
			f.logger.Error("download failed", "camera", folder, "file", photo.Filename, "error", err)
			continue
		}
		if err := os.WriteFile(localPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", localPath, err)
		}

		summary.Downloaded++
		f.logger.Debug("downloaded photo", "camera", folder, "file", photo.Filename)

		if f.limitReached(summary) {
			return nil
		}
	}
	return nil
}

func (f *Fetcher) limitReached(summary *Summary) bool {
	return f.settings.MaxPerRun > 0 && summary.Downloaded >= f.settings.MaxPerRun
}
