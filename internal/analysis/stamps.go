package analysis

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/willclo1/SpyPointAnalysis/internal/errors"
	"github.com/willclo1/SpyPointAnalysis/internal/observation"
	"github.com/willclo1/SpyPointAnalysis/internal/stamp"
)

// LoadStamps reads the OCR stamp CSV produced by the stamp extraction run.
// Rows are keyed by camera::filename when the file carries a camera column,
// by bare filename otherwise. A missing file yields an empty map: stamps are
// enrichment, not a prerequisite.
func LoadStamps(path string) (map[string]stamp.Stamp, error) {
	stamps := make(map[string]stamp.Stamp)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return stamps, nil
		}
		return nil, errors.New(err).
			Component("analysis").
			Category(errors.CategoryFileIO).
			FileContext(path).
			Build()
	}
	defer file.Close()

	cr := csv.NewReader(file)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return stamps, nil
		}
		return nil, errors.New(err).
			Component("analysis").
			Category(errors.CategoryFileParsing).
			FileContext(path).
			Build()
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
			return nil, errors.New(err).
				Component("analysis").
				Category(errors.CategoryFileParsing).
				FileContext(path).
				Build()
		}

		filename := get(row, "filename")
		if filename == "" {
			continue
		}

		st := stamp.Stamp{
			Date:    get(row, "date"),
			Time:    get(row, "time"),
			RawText: get(row, "raw_text"),
		}
		if v, err := strconv.Atoi(get(row, "temp_f")); err == nil {
			st.TempF = v
			st.HasTemp = true
		}
		if v, err := strconv.Atoi(get(row, "temp_c")); err == nil {
			st.TempC = v
			st.HasTemp = true
		}

		key := filename
		if camera := get(row, "camera"); camera != "" {
			key = observation.Key(camera, filename)
		}
		stamps[key] = st
	}
	return stamps, nil
}

// stampFor resolves a photo's stamp, preferring the camera-qualified key.
func stampFor(stamps map[string]stamp.Stamp, camera, filename string) (stamp.Stamp, bool) {
	if st, ok := stamps[observation.Key(camera, filename)]; ok {
		return st, true
	}
	st, ok := stamps[filename]
	return st, ok
}
