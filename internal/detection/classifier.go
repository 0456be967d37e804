package detection

import "github.com/willclo1/SpyPointAnalysis/internal/conf"

// categoryPriority is the fixed tie-break order when two categories clear
// their thresholds with equal confidence. Scores can tie exactly at a
// threshold, so score alone cannot decide.
var categoryPriority = []Category{CategoryAnimal, CategoryHuman, CategoryVehicle}

// ClassifyEventType decides the event type of a photo from its per-category
// confidences. A category is active when its confidence meets its own
// threshold; among active categories the highest confidence wins, ties broken
// by categoryPriority. With no active category the photo is blank.
//
// Missing or malformed confidences have already been coerced to 0 at the
// boundary; this function never fails.
func ClassifyEventType(detections []Detection, cfg *conf.ClassifierSettings) Category {
	confidences := map[Category]float64{
		CategoryAnimal:  MaxConfidence(detections, CategoryAnimal),
		CategoryHuman:   MaxConfidence(detections, CategoryHuman),
		CategoryVehicle: MaxConfidence(detections, CategoryVehicle),
	}
	thresholds := map[Category]float64{
		CategoryAnimal:  cfg.AnimalThreshold,
		CategoryHuman:   cfg.HumanThreshold,
		CategoryVehicle: cfg.VehicleThreshold,
	}

	best := CategoryBlank
	bestConf := 0.0
	for _, c := range categoryPriority {
		conf := confidences[c]
		if conf < thresholds[c] {
			continue
		}
		// strictly greater, so the earlier priority keeps ties
		if best == CategoryBlank || conf > bestConf {
			best = c
			bestConf = conf
		}
	}
	return best
}
