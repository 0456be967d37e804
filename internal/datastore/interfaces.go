// Package datastore persists observations and events to SQLite via GORM. The
// database is optional output alongside the flat files; queries it serves are
// the ones the reporting commands need.
package datastore

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/willclo1/SpyPointAnalysis/internal/conf"
	"github.com/willclo1/SpyPointAnalysis/internal/events"
	"github.com/willclo1/SpyPointAnalysis/internal/observation"
)

// Interface defines the database operations the pipeline uses.
type Interface interface {
	Open() error
	Close() error

	SaveObservations(records []observation.Record) error
	SaveEvents(evs []events.Event) error

	GetAllObservations() ([]observation.Record, error)
	GetObservationsBySpecies(species string) ([]observation.Record, error)
	GetEvents(limit int) ([]Event, error)
	CountBySpecies() (map[string]int64, error)
}

// DataStore implements Interface on top of a GORM database.
type DataStore struct {
	DB *gorm.DB
}

// New returns a store for the enabled backend, or nil when database output is
// disabled.
func New(settings *conf.Settings) Interface {
	if settings.Output.SQLite.Enabled {
		return &SQLiteStore{Settings: settings}
	}
	return nil
}

// SaveObservations upserts the records in one transaction, keyed by
// (camera, filename) so re-running analysis refreshes rows in place.
func (ds *DataStore) SaveObservations(records []observation.Record) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]Observation, 0, len(records))
	for i := range records {
		rows = append(rows, observationFromRecord(&records[i]))
	}

	return ds.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "camera"}, {Name: "filename"}},
			UpdateAll: true,
		}).Create(&rows).Error
	})
}

// SaveEvents replaces the stored events with the given set. Event identity is
// regenerated on every clustering pass, so replacement is the only merge that
// makes sense.
func (ds *DataStore) SaveEvents(evs []events.Event) error {
	rows := make([]Event, 0, len(evs))
	for i := range evs {
		rows = append(rows, eventFromDomain(&evs[i]))
	}

	return ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Event{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (ds *DataStore) GetAllObservations() ([]observation.Record, error) {
	var rows []Observation
	if err := ds.DB.Order("camera, filename").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load observations: %w", err)
	}
	return toRecords(rows), nil
}

func (ds *DataStore) GetObservationsBySpecies(species string) ([]observation.Record, error) {
	var rows []Observation
	if err := ds.DB.Where("species = ?", species).Order("timestamp").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load observations for %s: %w", species, err)
	}
	return toRecords(rows), nil
}

// GetEvents returns stored events newest first, capped at limit when it is
// positive.
func (ds *DataStore) GetEvents(limit int) ([]Event, error) {
	query := ds.DB.Order("start desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []Event
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	return rows, nil
}

// CountBySpecies returns observation counts per resolved species, animal rows
// only.
func (ds *DataStore) CountBySpecies() (map[string]int64, error) {
	type row struct {
		Species string
		Total   int64
	}
	var rows []row
	err := ds.DB.Model(&Observation{}).
		Select("species, count(*) as total").
		Where("event_type = ?", "animal").
		Group("species").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count species: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Species] = r.Total
	}
	return counts, nil
}

func toRecords(rows []Observation) []observation.Record {
	records := make([]observation.Record, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].Record())
	}
	return records
}
