// Package speciesnet reads SpeciesNet prediction files. The classifier is run
// out of band over an image folder; its predictions.json is the only contract
// between the two programs, so everything here is a DTO shaped after that
// file.
package speciesnet

import (
	"encoding/json"
	"os"
	"path"
	"strings"

	"github.com/willclo1/SpyPointAnalysis/internal/detection"
	"github.com/willclo1/SpyPointAnalysis/internal/errors"
)

// maxCandidates is how many ranked classification guesses are carried forward
// per photo.
const maxCandidates = 3

type detectionDTO struct {
	Category string  `json:"category"`
	Label    string  `json:"label,omitempty"`
	Conf     float64 `json:"conf"`
}

type classificationsDTO struct {
	Classes []string  `json:"classes"`
	Scores  []float64 `json:"scores"`
}

type predictionDTO struct {
	Filepath        string             `json:"filepath"`
	Detections      []detectionDTO     `json:"detections"`
	Classifications classificationsDTO `json:"classifications"`
	Prediction      string             `json:"prediction"`
	PredictionScore *float64           `json:"prediction_score"`
	Failures        []string           `json:"failures,omitempty"`
}

type fileDTO struct {
	Predictions []predictionDTO `json:"predictions"`
}

// Prediction is the classifier output for one photo, translated into domain
// types.
type Prediction struct {
	Filepath string

	Detections []detection.Detection

	// Primary is the ensemble's single best guess; its score is absent when
	// the classifier reported none.
	Primary detection.Candidate

	// Candidates are the ranked classification guesses, best first, at most
	// maxCandidates long.
	Candidates []detection.Candidate
}

// categoryFromCode maps SpeciesNet detector category codes to event types.
// Unknown codes are dropped.
func categoryFromCode(code string) (detection.Category, bool) {
	switch code {
	case "1":
		return detection.CategoryAnimal, true
	case "2":
		return detection.CategoryHuman, true
	case "3":
		return detection.CategoryVehicle, true
	}
	return "", false
}

// Load parses a predictions.json file and returns its predictions keyed by
// filepath, normalized to forward slashes.
func Load(filePath string) (map[string]Prediction, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.New(err).
			Component("speciesnet").
			Category(errors.CategoryFileIO).
			FileContext(filePath).
			Build()
	}

	var doc fileDTO
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.New(err).
			Component("speciesnet").
			Category(errors.CategoryFileParsing).
			FileContext(filePath).
			Context("bytes", len(data)).
			Build()
	}

	out := make(map[string]Prediction, len(doc.Predictions))
	for _, p := range doc.Predictions {
		key := NormalizePath(p.Filepath)
		if key == "" {
			continue
		}
		out[key] = convert(p)
	}
	return out, nil
}

func convert(p predictionDTO) Prediction {
	pred := Prediction{Filepath: NormalizePath(p.Filepath)}

	for _, d := range p.Detections {
		category, ok := categoryFromCode(d.Category)
		if !ok {
			continue
		}
		pred.Detections = append(pred.Detections, detection.Detection{
			Category:   category,
			Confidence: d.Conf,
		})
	}

	pred.Primary = detection.Candidate{Label: p.Prediction}
	if p.PredictionScore != nil {
		pred.Primary.Score = *p.PredictionScore
		pred.Primary.Scored = true
	}

	n := len(p.Classifications.Classes)
	if n > maxCandidates {
		n = maxCandidates
	}
	for i := 0; i < n; i++ {
		c := detection.Candidate{Label: p.Classifications.Classes[i]}
		if i < len(p.Classifications.Scores) {
			c.Score = p.Classifications.Scores[i]
			c.Scored = true
		}
		pred.Candidates = append(pred.Candidates, c)
	}

	return pred
}

// NormalizePath rewrites a prediction filepath to forward slashes with
// leading "./" trimmed, so keys match regardless of which OS ran the
// classifier.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimPrefix(p, "./")
	return path.Clean(p)
}

// SplitCameraFile derives the camera name and filename from a normalized
// filepath. Photos at the top level of the images folder get the camera
// "unknown".
func SplitCameraFile(filepath string) (camera, filename string) {
	dir, file := path.Split(filepath)
	dir = strings.Trim(dir, "/")
	if dir == "" || dir == "." {
		return "unknown", file
	}
	// Nested folders keep only the first component as the camera.
	if i := strings.Index(dir, "/"); i >= 0 {
		dir = dir[:i]
	}
	return dir, file
}
