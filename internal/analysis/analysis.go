// Package analysis orchestrates the photo pipeline: classifier predictions
// and OCR stamps flow in, the observation table and clustered events flow
// out.
package analysis

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/willclo1/SpyPointAnalysis/internal/conf"
	"github.com/willclo1/SpyPointAnalysis/internal/detection"
	"github.com/willclo1/SpyPointAnalysis/internal/events"
	"github.com/willclo1/SpyPointAnalysis/internal/logging"
	"github.com/willclo1/SpyPointAnalysis/internal/mooncalc"
	"github.com/willclo1/SpyPointAnalysis/internal/observation"
	"github.com/willclo1/SpyPointAnalysis/internal/species"
	"github.com/willclo1/SpyPointAnalysis/internal/speciesnet"
	"github.com/willclo1/SpyPointAnalysis/internal/stamp"
	"github.com/willclo1/SpyPointAnalysis/internal/suncalc"
)

// Result is what a full pipeline run produced.
type Result struct {
	Records []observation.Record
	Added   int
	Updated int

	Events events.Summary
}

// Analyzer runs the observation pipeline for one configured site.
type Analyzer struct {
	settings *conf.Settings
	loc      *time.Location
	sun      *suncalc.SunCalc
	moon     *mooncalc.MoonCalc
	logger   *slog.Logger
}

// New builds an analyzer with the site's sun and moon calculators.
func New(settings *conf.Settings) (*Analyzer, error) {
	loc, err := settings.Location()
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		settings: settings,
		loc:      loc,
		sun:      suncalc.NewSunCalc(settings.Site.Latitude, settings.Site.Longitude, loc),
		moon:     mooncalc.New(loc),
		logger:   logging.ForService("analysis"),
	}, nil
}

// Run loads predictions and stamps, resolves every photo into an observation
// row, merges the rows into the existing table, and clusters the table into
// events. Output files are written when file output is enabled.
func (a *Analyzer) Run(ctx context.Context) (*Result, error) {
	loc := a.loc

	preds, err := speciesnet.Load(a.settings.Input.Predictions)
	if err != nil {
		return nil, err
	}
	stamps, err := LoadStamps(a.settings.Input.Stamps)
	if err != nil {
		return nil, err
	}
	a.logger.Info("inputs loaded", "predictions", len(preds), "stamps", len(stamps))

	table, err := observation.Load(a.outputCSVPath(), loc)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(preds))
	for key := range preds {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	records := make([]observation.Record, len(keys))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pred := preds[key]
			records[i] = a.resolvePhoto(&pred, stamps, loc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	updateExisting := a.settings.Output.File.UpdateExisting
	for i := range records {
		table.Upsert(records[i], updateExisting)
	}

	result := &Result{
		Records: table.Records(),
		Added:   table.Added,
		Updated: table.Updated,
	}
	result.Events = events.Cluster(result.Records, events.Config{
		GapMinutes: a.settings.Events.GapMinutes,
		MaxMembers: a.settings.Events.MaxMembers,
	})

	a.logger.Info("analysis complete",
		"rows", len(result.Records),
		"added", result.Added,
		"updated", result.Updated,
		"events", len(result.Events.Events),
		"skipped_no_timestamp", result.Events.SkippedNoTimestamp)

	if a.settings.Output.File.Enabled {
		if err := a.writeOutputs(result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// resolvePhoto turns one prediction into a full observation row: event type
// from the detections, species from the tiered candidate selection, timestamp
// and temperature from the stamp, then moon and night enrichment.
func (a *Analyzer) resolvePhoto(pred *speciesnet.Prediction, stamps map[string]stamp.Stamp, loc *time.Location) observation.Record {
	camera, filename := speciesnet.SplitCameraFile(pred.Filepath)

	rec := observation.Record{
		Camera:      camera,
		Filename:    filename,
		AnimalConf:  detection.MaxConfidence(pred.Detections, detection.CategoryAnimal),
		HumanConf:   detection.MaxConfidence(pred.Detections, detection.CategoryHuman),
		VehicleConf: detection.MaxConfidence(pred.Detections, detection.CategoryVehicle),
	}
	rec.EventType = detection.ClassifyEventType(pred.Detections, &a.settings.Classifier)

	if st, ok := stampFor(stamps, camera, filename); ok {
		rec.Date = st.Date
		rec.Time = st.Time
		if st.HasTemp {
			rec.TempF = st.TempF
			rec.TempC = st.TempC
			rec.HasTemp = true
		}
		if ts, ok := st.Timestamp(loc); ok {
			rec.Timestamp = ts
			rec.HasTimestamp = true
		}
	}

	// Readable top-3, last taxonomy segment only.
	for i, c := range pred.Candidates {
		if i >= len(rec.Top) {
			break
		}
		rec.Top[i] = detection.Candidate{
			Label:  species.LastSegment(c.Label),
			Score:  c.Score,
			Scored: c.Scored,
		}
	}

	a.resolveSpecies(&rec, pred)

	if rec.HasTimestamp {
		mi := a.moon.MoonInfo(rec.Timestamp)
		rec.MoonPhase = mi.PhaseName
		rec.MoonIllumination = mi.Illumination
		rec.MoonAgeDays = mi.AgeDays
		rec.HasMoon = true
		rec.IsNight = a.sun.IsNight(rec.Timestamp)
	}
	return rec
}

// resolveSpecies fills the species columns according to the event type.
// Humans and vehicles get fixed pairs; blanks stay empty; animals go through
// candidate selection and normalization.
func (a *Analyzer) resolveSpecies(rec *observation.Record, pred *speciesnet.Prediction) {
	switch rec.EventType {
	case detection.CategoryHuman:
		rec.Species = "human"
		rec.SpeciesConf = rec.HumanConf
		rec.SpeciesClean, rec.SpeciesGroup = "Human", "Human"
		return
	case detection.CategoryVehicle:
		rec.Species = "vehicle"
		rec.SpeciesConf = rec.VehicleConf
		rec.SpeciesClean, rec.SpeciesGroup = "Vehicle", "Vehicle"
		return
	case detection.CategoryBlank:
		return
	}

	primary := detection.Candidate{
		Label:  species.LastSegment(pred.Primary.Label),
		Score:  pred.Primary.Score,
		Scored: pred.Primary.Scored,
	}
	secondary := rec.Top[:]

	sel := detection.ChooseSpecies(primary, secondary, &a.settings.Species, species.IsUsableCandidate)
	if sel.Tier == detection.TierNone {
		rec.SpeciesClean, rec.SpeciesGroup = species.UnknownLabel.CanonicalName, species.UnknownLabel.Group
		return
	}

	rec.Species = sel.Label
	rec.SpeciesConf = sel.Score

	label := species.Normalize(sel.Label, a.settings.Species.SuppressDomestic)
	rec.SpeciesClean = label.CanonicalName
	rec.SpeciesGroup = label.Group
}

func (a *Analyzer) outputCSVPath() string {
	dir := a.settings.Output.File.Path
	return filepath.Join(dir, "observations.csv")
}

func (a *Analyzer) outputTSVPath() string {
	dir := a.settings.Output.File.Path
	return filepath.Join(dir, "observations.tsv")
}

// writeOutputs writes the observation table as CSV and TSV, plus the events
// JSON when a path is configured.
func (a *Analyzer) writeOutputs(result *Result) error {
	if err := observation.WriteFile(a.outputCSVPath(), result.Records); err != nil {
		return err
	}
	if err := observation.WriteFile(a.outputTSVPath(), result.Records); err != nil {
		return err
	}
	if path := a.settings.Output.File.EventsJSON; path != "" {
		if err := events.WriteJSON(path, result.Events.Events); err != nil {
			return err
		}
	}
	return nil
}
