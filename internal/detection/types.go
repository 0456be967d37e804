// Package detection provides the core domain model for trail camera photo
// analysis. It defines PhotoRecord as the single source of truth for per-photo
// classifier output and holds the event type and species selection logic.
// External serialization (CSV, JSON, database) is handled by boundary-specific
// DTOs and entities.
package detection

import "time"

// Category is the coarse event type of a photo.
type Category string

const (
	CategoryAnimal  Category = "animal"
	CategoryHuman   Category = "human"
	CategoryVehicle Category = "vehicle"
	CategoryBlank   Category = "blank"
)

// Detection is a single category confidence observation for a photo. The
// classifier may emit several detections per photo; only the maximum
// confidence per category matters downstream.
type Detection struct {
	Category   Category
	Confidence float64
}

// Candidate is one ranked species guess from the classifier. A missing score
// is valid and distinct from a score of zero; a label without a score can
// never clear a selection threshold.
type Candidate struct {
	Label  string
	Score  float64
	Scored bool
}

// PhotoRecord is the unit flowing through the pipeline: one photo with its
// classifier output and, when the stamp could be read, its timestamp.
type PhotoRecord struct {
	Camera   string
	Filename string

	Timestamp    time.Time
	HasTimestamp bool
	TempF        int
	TempC        int
	HasTemp      bool

	Detections []Detection
	Primary    Candidate
	Secondary  []Candidate // up to 3 ranked candidates
}

// MaxConfidence returns the highest confidence among detections of the given
// category, or 0 when the category is absent.
func MaxConfidence(detections []Detection, category Category) float64 {
	best := 0.0
	for _, d := range detections {
		if d.Category == category && d.Confidence > best {
			best = d.Confidence
		}
	}
	return best
}
