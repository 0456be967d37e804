package observation

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willclo1/SpyPointAnalysis/internal/detection"
)

func sampleRecord(loc *time.Location) Record {
	return Record{
		Camera:           "feeder",
		Filename:         "IMG_0001.JPG",
		Date:             "3/14/2025",
		Time:             "6:45 PM",
		TempF:            68,
		TempC:            20,
		HasTemp:          true,
		Timestamp:        time.Date(2025, 3, 14, 18, 45, 0, 0, loc),
		HasTimestamp:     true,
		EventType:        detection.CategoryAnimal,
		AnimalConf:       0.91,
		Species:          "White-tailed Deer",
		SpeciesConf:      0.874,
		SpeciesClean:     "White-tailed Deer",
		SpeciesGroup:     "Deer",
		MoonPhase:        "Full",
		MoonIllumination: 0.998,
		MoonAgeDays:      14.77,
		HasMoon:          true,
		IsNight:          true,
		Top: [3]detection.Candidate{
			{Label: "odocoileus virginianus;white-tailed deer", Score: 0.874, Scored: true},
			{Label: "mammalia;mammal", Score: 0.06, Scored: true},
			{},
		},
	}
}

func TestKey(t *testing.T) {
	rec := Record{Camera: "feeder", Filename: "a.jpg"}
	assert.Equal(t, "feeder::a.jpg", rec.Key())
	assert.Equal(t, rec.Key(), Key("feeder", "a.jpg"))
}

func TestWriteRoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	rec := sampleRecord(loc)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []Record{rec}, ','))

	table := NewTable()
	require.NoError(t, table.read(&buf, loc))
	require.Equal(t, 1, table.Len())

	got := table.Records()[0]
	assert.Equal(t, rec.Camera, got.Camera)
	assert.Equal(t, rec.Filename, got.Filename)
	assert.Equal(t, rec.EventType, got.EventType)
	assert.True(t, got.HasTemp)
	assert.Equal(t, 68, got.TempF)
	assert.Equal(t, 20, got.TempC)
	assert.InDelta(t, 0.91, got.AnimalConf, 0.001)
	assert.Equal(t, "White-tailed Deer", got.Species)
	assert.Equal(t, "Deer", got.SpeciesGroup)
	assert.True(t, got.HasMoon)
	assert.Equal(t, "Full", got.MoonPhase)
	assert.True(t, got.IsNight)
	assert.True(t, got.HasTimestamp)
	assert.True(t, got.Timestamp.Equal(rec.Timestamp))
	assert.Equal(t, rec.Top[0].Label, got.Top[0].Label)
	assert.InDelta(t, rec.Top[0].Score, got.Top[0].Score, 0.001)
	assert.False(t, got.Top[2].Scored)
}

func TestLoadMissingFile(t *testing.T) {
	table, err := Load(filepath.Join(t.TempDir(), "nope.csv"), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestWriteFileAndLoad(t *testing.T) {
	loc := time.UTC
	path := filepath.Join(t.TempDir(), "observations.csv")
	rec := sampleRecord(loc)
	require.NoError(t, WriteFile(path, []Record{rec}))

	table, err := Load(path, loc)
	require.NoError(t, err)
	assert.True(t, table.Has(rec.Key()))
}

func TestWriteFileTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observations.tsv")
	require.NoError(t, WriteFile(path, []Record{{Camera: "c", Filename: "f.jpg"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "camera\tfilename")
}

func TestUpsert(t *testing.T) {
	table := NewTable()
	rec := Record{Camera: "c1", Filename: "a.jpg", Species: "Coyote"}

	assert.True(t, table.Upsert(rec, false))
	assert.Equal(t, 1, table.Added)

	rec.Species = "Bobcat"
	assert.False(t, table.Upsert(rec, false), "existing row kept without update flag")
	assert.Equal(t, "Coyote", table.Records()[0].Species)

	assert.True(t, table.Upsert(rec, true))
	assert.Equal(t, 1, table.Updated)
	assert.Equal(t, "Bobcat", table.Records()[0].Species)
}

func TestRecordsSorted(t *testing.T) {
	table := NewTable()
	table.Upsert(Record{Camera: "b", Filename: "2.jpg"}, false)
	table.Upsert(Record{Camera: "a", Filename: "9.jpg"}, false)
	table.Upsert(Record{Camera: "b", Filename: "1.jpg"}, false)

	recs := table.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, "a", recs[0].Camera)
	assert.Equal(t, "1.jpg", recs[1].Filename)
	assert.Equal(t, "2.jpg", recs[2].Filename)
}

func TestMalformedNumericColumns(t *testing.T) {
	csvData := "camera,filename,date,time,temp_f,temp_c,event_type,animal_conf,human_conf,vehicle_conf,species,species_conf,species_clean,species_group,moon_phase,moon_illumination,moon_age_days,is_night,top1_species,top1_conf,top2_species,top2_conf,top3_species,top3_conf\n" +
		"cam,x.jpg,,,not-a-number,,animal,oops,,,Coyote,0.5,Coyote,Predators,,,,maybe,,,,,,\n"

	table := NewTable()
	require.NoError(t, table.read(bytes.NewBufferString(csvData), time.UTC))

	rec := table.Records()[0]
	assert.False(t, rec.HasTemp)
	assert.Zero(t, rec.AnimalConf)
	assert.False(t, rec.IsNight)
	assert.False(t, rec.HasTimestamp)
	assert.Equal(t, "Coyote", rec.Species)
}
