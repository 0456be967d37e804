package datastore

import (
	"strings"
	"time"

	"github.com/willclo1/SpyPointAnalysis/internal/detection"
	"github.com/willclo1/SpyPointAnalysis/internal/events"
	"github.com/willclo1/SpyPointAnalysis/internal/observation"
)

// Observation is the database row for one analyzed photo.
type Observation struct {
	ID       uint   `gorm:"primaryKey"`
	Camera   string `gorm:"index:idx_observations_key,unique;index"`
	Filename string `gorm:"index:idx_observations_key,unique"`

	Timestamp    time.Time `gorm:"index"`
	HasTimestamp bool

	Date  string
	Time  string
	TempF int
	TempC int

	EventType   string `gorm:"index"`
	AnimalConf  float64
	HumanConf   float64
	VehicleConf float64

	Species      string `gorm:"index"`
	SpeciesConf  float64
	SpeciesClean string
	SpeciesGroup string

	MoonPhase        string
	MoonIllumination float64
	MoonAgeDays      float64
	IsNight          bool
}

// Event is the database row for one clustered animal visit.
type Event struct {
	ID      string `gorm:"primaryKey"`
	Camera  string `gorm:"index"`
	Species string `gorm:"index"`
	Group   string

	Start time.Time `gorm:"index"`
	End   time.Time
	Count int

	FirstFrame string

	// Members holds the member filenames newline separated. Good enough for
	// a single-writer analysis database; no joins needed.
	Members string
}

func observationFromRecord(rec *observation.Record) Observation {
	return Observation{
		Camera:           rec.Camera,
		Filename:         rec.Filename,
		Timestamp:        rec.Timestamp,
		HasTimestamp:     rec.HasTimestamp,
		Date:             rec.Date,
		Time:             rec.Time,
		TempF:            rec.TempF,
		TempC:            rec.TempC,
		EventType:        string(rec.EventType),
		AnimalConf:       rec.AnimalConf,
		HumanConf:        rec.HumanConf,
		VehicleConf:      rec.VehicleConf,
		Species:          rec.Species,
		SpeciesConf:      rec.SpeciesConf,
		SpeciesClean:     rec.SpeciesClean,
		SpeciesGroup:     rec.SpeciesGroup,
		MoonPhase:        rec.MoonPhase,
		MoonIllumination: rec.MoonIllumination,
		MoonAgeDays:      rec.MoonAgeDays,
		IsNight:          rec.IsNight,
	}
}

// Record converts the row back to the pipeline's observation type.
func (o *Observation) Record() observation.Record {
	rec := observation.Record{
		Camera:           o.Camera,
		Filename:         o.Filename,
		Timestamp:        o.Timestamp,
		HasTimestamp:     o.HasTimestamp,
		Date:             o.Date,
		Time:             o.Time,
		TempF:            o.TempF,
		TempC:            o.TempC,
		HasTemp:          o.TempF != 0 || o.TempC != 0,
		EventType:        detection.Category(o.EventType),
		AnimalConf:       o.AnimalConf,
		HumanConf:        o.HumanConf,
		VehicleConf:      o.VehicleConf,
		Species:          o.Species,
		SpeciesConf:      o.SpeciesConf,
		SpeciesClean:     o.SpeciesClean,
		SpeciesGroup:     o.SpeciesGroup,
		MoonPhase:        o.MoonPhase,
		MoonIllumination: o.MoonIllumination,
		MoonAgeDays:      o.MoonAgeDays,
		IsNight:          o.IsNight,
	}
	rec.HasMoon = o.MoonPhase != ""
	return rec
}

func eventFromDomain(e *events.Event) Event {
	members := make([]string, 0, len(e.Members))
	for _, m := range e.Members {
		members = append(members, m.Filename)
	}
	return Event{
		ID:         e.ID,
		Camera:     e.Camera,
		Species:    e.Species,
		Group:      e.Group,
		Start:      e.Start,
		End:        e.End,
		Count:      e.Count,
		FirstFrame: e.FirstFrame,
		Members:    strings.Join(members, "\n"),
	}
}
