package observation

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/willclo1/SpyPointAnalysis/internal/detection"
	"github.com/willclo1/SpyPointAnalysis/internal/mooncalc"
)

// Fields is the column order of the observation table.
var Fields = []string{
	"camera",
	"filename",
	"date",
	"time",
	"temp_f",
	"temp_c",

	"event_type",
	"animal_conf",
	"human_conf",
	"vehicle_conf",

	"species",
	"species_conf",

	"species_clean",
	"species_group",

	"moon_phase",
	"moon_illumination",
	"moon_age_days",

	"is_night",

	"top1_species",
	"top1_conf",
	"top2_species",
	"top2_conf",
	"top3_species",
	"top3_conf",
}

func (r *Record) row() []string {
	row := make([]string, 0, len(Fields))

	row = append(row, r.Camera, r.Filename, r.Date, r.Time)
	if r.HasTemp {
		row = append(row, strconv.Itoa(r.TempF), strconv.Itoa(r.TempC))
	} else {
		row = append(row, "", "")
	}

	row = append(row,
		string(r.EventType),
		fmt.Sprintf("%.3f", r.AnimalConf),
		fmt.Sprintf("%.3f", r.HumanConf),
		fmt.Sprintf("%.3f", r.VehicleConf),
	)

	row = append(row, r.Species)
	if r.SpeciesConf > 0 {
		row = append(row, fmt.Sprintf("%.3f", r.SpeciesConf))
	} else {
		row = append(row, "")
	}

	row = append(row, r.SpeciesClean, r.SpeciesGroup)

	if r.HasMoon {
		row = append(row,
			r.MoonPhase,
			mooncalc.FormatIllumination(r.MoonIllumination),
			mooncalc.FormatAge(r.MoonAgeDays),
		)
	} else {
		row = append(row, "", "", "")
	}

	if r.HasTimestamp {
		row = append(row, strconv.FormatBool(r.IsNight))
	} else {
		row = append(row, "")
	}

	for _, c := range r.Top {
		row = append(row, c.Label)
		if c.Label != "" && c.Scored {
			row = append(row, fmt.Sprintf("%.3f", c.Score))
		} else {
			row = append(row, "")
		}
	}

	return row
}

// Write writes records to w with the given delimiter (',' or '\t').
func Write(w io.Writer, records []Record, delimiter rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delimiter

	if err := cw.Write(Fields); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range records {
		if err := cw.Write(records[i].row()); err != nil {
			return fmt.Errorf("failed to write record %s: %w", records[i].Key(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes records to path, choosing the delimiter from the path
// extension: .tsv gets tabs, anything else commas.
func WriteFile(path string, records []Record) error {
	delimiter := ','
	if len(path) > 4 && path[len(path)-4:] == ".tsv" {
		delimiter = '\t'
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	return Write(file, records, delimiter)
}

// coerceFloat parses a float the forgiving way the pipeline treats all
// numeric input: anything malformed or missing becomes 0.
func coerceFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// coerceInt is coerceFloat for temperatures.
func coerceInt(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func candidateFromColumns(label, conf string) detection.Candidate {
	c := detection.Candidate{Label: label}
	if conf != "" {
		c.Score = coerceFloat(conf)
		c.Scored = true
	}
	return c
}
