package events

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type eventJSON struct {
	ID         string   `json:"id"`
	Camera     string   `json:"camera"`
	Species    string   `json:"species"`
	Group      string   `json:"group,omitempty"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
	DurationS  float64  `json:"duration_seconds"`
	Count      int      `json:"count"`
	FirstFrame string   `json:"first_frame"`
	Members    []string `json:"members"`
}

// WriteJSON writes the events to path as a JSON array, newest first, in the
// order Cluster produced them.
func WriteJSON(path string, events []Event) error {
	out := make([]eventJSON, 0, len(events))
	for i := range events {
		e := &events[i]
		members := make([]string, 0, len(e.Members))
		for _, m := range e.Members {
			members = append(members, m.Filename)
		}
		out = append(out, eventJSON{
			ID:         e.ID,
			Camera:     e.Camera,
			Species:    e.Species,
			Group:      e.Group,
			Start:      e.Start.Format(time.RFC3339),
			End:        e.End.Format(time.RFC3339),
			DurationS:  e.Duration().Seconds(),
			Count:      e.Count,
			FirstFrame: e.FirstFrame,
			Members:    members,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
