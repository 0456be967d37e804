package observation

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/willclo1/SpyPointAnalysis/internal/detection"
	"github.com/willclo1/SpyPointAnalysis/internal/stamp"
)

// Table is the keyed observation set backing the flat-file output. Re-running
// the pipeline over a folder appends new photos and, when updating is enabled,
// refreshes rows already present.
type Table struct {
	rows map[string]Record

	Added   int
	Updated int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{rows: make(map[string]Record)}
}

// Load reads an existing observation CSV into a table. A missing file yields
// an empty table, not an error: the first run starts from nothing.
func Load(path string, loc *time.Location) (*Table, error) {
	t := NewTable()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	if err := t.read(file, loc); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

func (t *Table) read(r io.Reader, loc *time.Location) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	get := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		rec := Record{
			Camera:       get(row, "camera"),
			Filename:     get(row, "filename"),
			Date:         get(row, "date"),
			Time:         get(row, "time"),
			EventType:    detection.Category(get(row, "event_type")),
			AnimalConf:   coerceFloat(get(row, "animal_conf")),
			HumanConf:    coerceFloat(get(row, "human_conf")),
			VehicleConf:  coerceFloat(get(row, "vehicle_conf")),
			Species:      get(row, "species"),
			SpeciesConf:  coerceFloat(get(row, "species_conf")),
			SpeciesClean: get(row, "species_clean"),
			SpeciesGroup: get(row, "species_group"),
			MoonPhase:    get(row, "moon_phase"),
		}
		if rec.Filename == "" {
			continue
		}
		if rec.Camera == "" {
			rec.Camera = "unknown"
		}

		if v, ok := coerceInt(get(row, "temp_f")); ok {
			rec.TempF = v
			rec.HasTemp = true
		}
		if v, ok := coerceInt(get(row, "temp_c")); ok {
			rec.TempC = v
			rec.HasTemp = true
		}

		if rec.MoonPhase != "" {
			rec.HasMoon = true
			rec.MoonIllumination = coerceFloat(get(row, "moon_illumination"))
			rec.MoonAgeDays = coerceFloat(get(row, "moon_age_days"))
		}

		if v, err := strconv.ParseBool(get(row, "is_night")); err == nil {
			rec.IsNight = v
		}

		for i := range rec.Top {
			n := strconv.Itoa(i + 1)
			rec.Top[i] = candidateFromColumns(
				get(row, "top"+n+"_species"),
				get(row, "top"+n+"_conf"),
			)
		}

		st := stamp.Stamp{Date: rec.Date, Time: rec.Time}
		if ts, ok := st.Timestamp(loc); ok {
			rec.Timestamp = ts
			rec.HasTimestamp = true
		}

		t.rows[rec.Key()] = rec
	}
	return nil
}

// Has reports whether the table already holds a row for the key.
func (t *Table) Has(key string) bool {
	_, ok := t.rows[key]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Upsert inserts the record, or replaces an existing row when updateExisting
// is set. It reports whether the table changed.
func (t *Table) Upsert(rec Record, updateExisting bool) bool {
	key := rec.Key()
	if _, exists := t.rows[key]; exists {
		if !updateExisting {
			return false
		}
		t.rows[key] = rec
		t.Updated++
		return true
	}
	t.rows[key] = rec
	t.Added++
	return true
}

// Records returns all rows sorted by camera then filename, the stable order
// the flat files are written in.
func (t *Table) Records() []Record {
	out := make([]Record, 0, len(t.rows))
	for _, rec := range t.rows {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Camera != out[j].Camera {
			return out[i].Camera < out[j].Camera
		}
		return out[i].Filename < out[j].Filename
	})
	return out
}
