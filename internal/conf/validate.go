// validate.go: startup validation of settings, the only fatal error path in the
// pipeline. Everything downstream handles bad data by falling back and counting.
package conf

import (
	"fmt"
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	if err := validateClassifierSettings(&settings.Classifier); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateSpeciesSettings(&settings.Species); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateEventsSettings(&settings.Events); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateSiteSettings(&settings.Site); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateClassifierSettings(c *ClassifierSettings) error {
	if c.AnimalThreshold < 0 || c.AnimalThreshold > 1 {
		return fmt.Errorf("classifier animal threshold must be between 0 and 1: %f", c.AnimalThreshold)
	}
	if c.HumanThreshold < 0 || c.HumanThreshold > 1 {
		return fmt.Errorf("classifier human threshold must be between 0 and 1: %f", c.HumanThreshold)
	}
	if c.VehicleThreshold < 0 || c.VehicleThreshold > 1 {
		return fmt.Errorf("classifier vehicle threshold must be between 0 and 1: %f", c.VehicleThreshold)
	}
	return nil
}

func validateSpeciesSettings(s *SpeciesSettings) error {
	if s.StrongThreshold < 0 || s.StrongThreshold > 1 {
		return fmt.Errorf("species strong threshold must be between 0 and 1: %f", s.StrongThreshold)
	}
	if s.FallbackThreshold < 0 || s.FallbackThreshold > 1 {
		return fmt.Errorf("species fallback threshold must be between 0 and 1: %f", s.FallbackThreshold)
	}
	if s.FallbackThreshold > s.StrongThreshold {
		return fmt.Errorf("species fallback threshold %f must not exceed strong threshold %f",
			s.FallbackThreshold, s.StrongThreshold)
	}
	return nil
}

func validateEventsSettings(e *EventsSettings) error {
	if e.GapMinutes <= 0 {
		return fmt.Errorf("events gap minutes must be positive: %f", e.GapMinutes)
	}
	if e.MaxMembers < 2 {
		return fmt.Errorf("events max members must be at least 2: %d", e.MaxMembers)
	}
	return nil
}

func validateSiteSettings(s *SiteSettings) error {
	if s.Latitude < -90 || s.Latitude > 90 {
		return fmt.Errorf("site latitude must be between -90 and 90: %f", s.Latitude)
	}
	if s.Longitude < -180 || s.Longitude > 180 {
		return fmt.Errorf("site longitude must be between -180 and 180: %f", s.Longitude)
	}
	return nil
}
