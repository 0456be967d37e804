package events

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/willclo1/SpyPointAnalysis/internal/detection"
	"github.com/willclo1/SpyPointAnalysis/internal/observation"
	"github.com/willclo1/SpyPointAnalysis/internal/species"
)

// Config controls how observations are grouped into events.
type Config struct {
	// GapMinutes is the largest gap between consecutive photos that still
	// counts as the same visit. A gap strictly larger starts a new event.
	GapMinutes float64

	// MaxMembers caps how many photos a single event keeps. The earliest
	// photos win; later ones in the same run are dropped.
	MaxMembers int
}

// Event is one animal visit: a run of photos of the same species on the same
// camera with no long pauses in between.
type Event struct {
	ID      string
	Camera  string
	Species string
	Group   string

	Start time.Time
	End   time.Time
	Count int

	// FirstFrame is the earliest photo of the visit, used as the thumbnail.
	FirstFrame string

	Members []observation.Record
}

// Duration returns the span from the first to the last kept photo.
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Summary is the result of a clustering pass.
type Summary struct {
	Events []Event

	// SkippedNoTimestamp counts animal observations that could not be
	// clustered because no timestamp was recovered from their stamp.
	SkippedNoTimestamp int

	// SkippedNonAnimal counts observations left out because they were
	// classified as human, vehicle, or blank.
	SkippedNonAnimal int

	// SkippedOther counts animal observations whose label resolved to the
	// junk bucket; a cluster of "Other" is not a wildlife visit.
	SkippedOther int
}

type partitionKey struct {
	camera  string
	species string
}

// Cluster groups animal observations into events. Observations are
// partitioned by (camera, species), sorted by time, and split wherever the
// gap between consecutive photos exceeds the configured threshold. Runs with
// a single photo are discarded: one frame is not evidence of a visit.
// The returned events are ordered newest first.
func Cluster(records []observation.Record, cfg Config) Summary {
	var summary Summary

	partitions := make(map[partitionKey][]observation.Record)
	for _, rec := range records {
		if rec.EventType != detection.CategoryAnimal || rec.SpeciesClean == "" {
			summary.SkippedNonAnimal++
			continue
		}
		if rec.SpeciesClean == species.OtherLabel.CanonicalName {
			summary.SkippedOther++
			continue
		}
		if !rec.HasTimestamp {
			summary.SkippedNoTimestamp++
			continue
		}
		key := partitionKey{camera: rec.Camera, species: rec.SpeciesClean}
		partitions[key] = append(partitions[key], rec)
	}

	keys := make([]partitionKey, 0, len(partitions))
	for key := range partitions {
		keys = append(keys, key)
	}

	results := make([][]Event, len(keys))
	var g errgroup.Group
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			results[i] = clusterPartition(key, partitions[key], cfg)
			return nil
		})
	}
	_ = g.Wait() // partition workers do not return errors

	for _, events := range results {
		summary.Events = append(summary.Events, events...)
	}

	sort.Slice(summary.Events, func(i, j int) bool {
		a, b := &summary.Events[i], &summary.Events[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.After(b.Start)
		}
		if a.Camera != b.Camera {
			return a.Camera < b.Camera
		}
		return a.Species < b.Species
	})

	return summary
}

func clusterPartition(key partitionKey, records []observation.Record, cfg Config) []Event {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	gap := time.Duration(cfg.GapMinutes * float64(time.Minute))

	var events []Event
	var run []observation.Record

	flush := func() {
		if len(run) < 2 {
			run = nil
			return
		}
		members := run
		if cfg.MaxMembers > 0 && len(members) > cfg.MaxMembers {
			members = members[:cfg.MaxMembers]
		}
		events = append(events, Event{
			ID:         uuid.New().String(),
			Camera:     key.camera,
			Species:    key.species,
			Group:      members[0].SpeciesGroup,
			Start:      members[0].Timestamp,
			End:        members[len(members)-1].Timestamp,
			Count:      len(members),
			FirstFrame: members[0].Filename,
			Members:    members,
		})
		run = nil
	}

	for _, rec := range records {
		if len(run) > 0 && rec.Timestamp.Sub(run[len(run)-1].Timestamp) > gap {
			flush()
		}
		run = append(run, rec)
	}
	flush()

	return events
}
