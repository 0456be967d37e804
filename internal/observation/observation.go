// Package observation defines the enriched per-photo record produced by label
// resolution and the flat-file table it is stored in. The table is the
// pipeline's durable output; re-runs append to it keyed by camera and
// filename, matching how photos trickle in from the cameras over days.
package observation

import (
	"fmt"
	"time"

	"github.com/willclo1/SpyPointAnalysis/internal/detection"
)

// Record is one enriched photo: stamp data, classifier confidences, the
// resolved event type and species pair, and enrichment fields. It is built
// once by label resolution and read-only afterwards; clustering owns its own
// grouping of records and never mutates them.
type Record struct {
	Camera   string
	Filename string

	// Stamp fields in camera locale format; empty when OCR found nothing
	Date    string
	Time    string
	TempF   int
	TempC   int
	HasTemp bool

	// Parsed stamp timestamp; records without one are excluded from clustering
	Timestamp    time.Time
	HasTimestamp bool

	EventType   detection.Category
	AnimalConf  float64
	HumanConf   float64
	VehicleConf float64

	// Raw best label kept for audit, plus the chart-safe resolved pair
	Species      string
	SpeciesConf  float64
	SpeciesClean string
	SpeciesGroup string

	MoonPhase        string
	MoonIllumination float64
	MoonAgeDays      float64
	HasMoon          bool

	IsNight bool

	// Top-3 ranked candidates, raw-ish but readable
	Top [3]detection.Candidate
}

// Key identifies a record within the table.
func (r *Record) Key() string {
	return Key(r.Camera, r.Filename)
}

// Key builds the table key for a camera and filename.
func Key(camera, filename string) string {
	return fmt.Sprintf("%s::%s", camera, filename)
}
