package events

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willclo1/SpyPointAnalysis/internal/detection"
	"github.com/willclo1/SpyPointAnalysis/internal/observation"
)

var base = time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC)

func obs(camera, species string, minute float64) observation.Record {
	ts := base.Add(time.Duration(minute * float64(time.Minute)))
	return observation.Record{
		Camera:       camera,
		Filename:     ts.Format("IMG_150405.JPG"),
		Timestamp:    ts,
		HasTimestamp: true,
		EventType:    detection.CategoryAnimal,
		Species:      species,
		SpeciesClean: species,
		SpeciesGroup: "Deer",
	}
}

func TestClusterSplitsOnGap(t *testing.T) {
	// Gaps of 3, 2, 15, 2 minutes with a 12 minute threshold: the 15 minute
	// pause splits the run into a visit of 3 and a visit of 2.
	records := []observation.Record{
		obs("feeder", "White-tailed Deer", 0),
		obs("feeder", "White-tailed Deer", 3),
		obs("feeder", "White-tailed Deer", 5),
		obs("feeder", "White-tailed Deer", 20),
		obs("feeder", "White-tailed Deer", 22),
	}

	summary := Cluster(records, Config{GapMinutes: 12, MaxMembers: 200})
	require.Len(t, summary.Events, 2)

	// Newest first.
	assert.Equal(t, 2, summary.Events[0].Count)
	assert.Equal(t, base.Add(20*time.Minute), summary.Events[0].Start)
	assert.Equal(t, 3, summary.Events[1].Count)
	assert.Equal(t, base, summary.Events[1].Start)
	assert.Equal(t, base.Add(5*time.Minute), summary.Events[1].End)
}

func TestClusterGapExactlyAtThreshold(t *testing.T) {
	records := []observation.Record{
		obs("feeder", "Coyote", 0),
		obs("feeder", "Coyote", 15),
	}

	summary := Cluster(records, Config{GapMinutes: 15, MaxMembers: 200})
	require.Len(t, summary.Events, 1, "a gap equal to the threshold stays in one event")
	assert.Equal(t, 2, summary.Events[0].Count)
}

func TestClusterGapJustOverThreshold(t *testing.T) {
	records := []observation.Record{
		obs("feeder", "Coyote", 0),
		obs("feeder", "Coyote", 15.01),
	}

	summary := Cluster(records, Config{GapMinutes: 15, MaxMembers: 200})
	assert.Empty(t, summary.Events, "the split leaves two singletons, both discarded")
}

func TestClusterDiscardsSingletons(t *testing.T) {
	records := []observation.Record{
		obs("feeder", "Bobcat", 0),
	}

	summary := Cluster(records, Config{GapMinutes: 15, MaxMembers: 200})
	assert.Empty(t, summary.Events)
}

func TestClusterPartitionsByCameraAndSpecies(t *testing.T) {
	records := []observation.Record{
		obs("feeder", "White-tailed Deer", 0),
		obs("feeder", "White-tailed Deer", 1),
		obs("feeder", "Raccoon", 0),
		obs("feeder", "Raccoon", 1),
		obs("pond", "White-tailed Deer", 0),
		obs("pond", "White-tailed Deer", 1),
	}

	summary := Cluster(records, Config{GapMinutes: 15, MaxMembers: 200})
	assert.Len(t, summary.Events, 3)
}

func TestClusterSkipsNonAnimalAndUntimed(t *testing.T) {
	human := obs("feeder", "Human", 0)
	human.EventType = detection.CategoryHuman

	blank := obs("feeder", "", 1)
	blank.EventType = detection.CategoryBlank
	blank.SpeciesClean = ""

	untimed := obs("feeder", "Coyote", 2)
	untimed.HasTimestamp = false

	junk := obs("feeder", "Other", 3)
	junk2 := obs("feeder", "Other", 4)

	records := []observation.Record{
		human, blank, untimed, junk, junk2,
		obs("feeder", "Coyote", 0),
		obs("feeder", "Coyote", 1),
	}

	summary := Cluster(records, Config{GapMinutes: 15, MaxMembers: 200})
	assert.Len(t, summary.Events, 1)
	assert.Equal(t, 1, summary.SkippedNoTimestamp)
	assert.Equal(t, 2, summary.SkippedNonAnimal)
	assert.Equal(t, 2, summary.SkippedOther, "a run of Other labels never becomes an event")
}

func TestClusterTruncatesToMaxMembers(t *testing.T) {
	records := []observation.Record{
		obs("feeder", "Feral Hog", 0),
		obs("feeder", "Feral Hog", 1),
		obs("feeder", "Feral Hog", 2),
		obs("feeder", "Feral Hog", 3),
	}

	summary := Cluster(records, Config{GapMinutes: 15, MaxMembers: 2})
	require.Len(t, summary.Events, 1)

	e := summary.Events[0]
	assert.Equal(t, 2, e.Count)
	assert.Equal(t, base, e.Start, "truncation keeps the earliest photos")
	assert.Equal(t, base.Add(time.Minute), e.End)
	assert.Equal(t, records[0].Filename, e.FirstFrame)
}

func TestClusterUnsortedInput(t *testing.T) {
	records := []observation.Record{
		obs("feeder", "Coyote", 5),
		obs("feeder", "Coyote", 0),
		obs("feeder", "Coyote", 3),
	}

	summary := Cluster(records, Config{GapMinutes: 15, MaxMembers: 200})
	require.Len(t, summary.Events, 1)
	assert.Equal(t, base, summary.Events[0].Start)
	assert.Equal(t, base.Add(5*time.Minute), summary.Events[0].End)
}

func TestClusterEventIdentity(t *testing.T) {
	records := []observation.Record{
		obs("feeder", "Coyote", 0),
		obs("feeder", "Coyote", 1),
	}

	summary := Cluster(records, Config{GapMinutes: 15, MaxMembers: 200})
	require.Len(t, summary.Events, 1)

	e := summary.Events[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "feeder", e.Camera)
	assert.Equal(t, "Coyote", e.Species)
	assert.Equal(t, "Deer", e.Group)
	assert.Equal(t, time.Minute, e.Duration())
}

func TestWriteJSON(t *testing.T) {
	records := []observation.Record{
		obs("feeder", "Coyote", 0),
		obs("feeder", "Coyote", 1),
	}
	summary := Cluster(records, Config{GapMinutes: 15, MaxMembers: 200})

	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, WriteJSON(path, summary.Events))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Coyote", decoded[0]["species"])
	assert.Equal(t, float64(2), decoded[0]["count"])
	assert.Len(t, decoded[0]["members"], 2)
}
