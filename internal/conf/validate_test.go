package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	s := &Settings{}
	s.Classifier = ClassifierSettings{AnimalThreshold: 0.20, HumanThreshold: 0.30, VehicleThreshold: 0.30}
	s.Species = SpeciesSettings{StrongThreshold: 0.60, FallbackThreshold: 0.35, SuppressDomestic: true}
	s.Events = EventsSettings{GapMinutes: 15, MaxMembers: 200}
	s.Site = SiteSettings{Latitude: 29.905, Longitude: -96.877, TimeZone: "America/Chicago"}
	return s
}

func TestValidateSettings_Valid(t *testing.T) {
	require.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettings_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"animal threshold above one", func(s *Settings) { s.Classifier.AnimalThreshold = 1.5 }},
		{"human threshold negative", func(s *Settings) { s.Classifier.HumanThreshold = -0.1 }},
		{"vehicle threshold above one", func(s *Settings) { s.Classifier.VehicleThreshold = 2 }},
		{"strong threshold above one", func(s *Settings) { s.Species.StrongThreshold = 1.01 }},
		{"fallback above strong", func(s *Settings) { s.Species.FallbackThreshold = 0.9 }},
		{"gap minutes zero", func(s *Settings) { s.Events.GapMinutes = 0 }},
		{"gap minutes negative", func(s *Settings) { s.Events.GapMinutes = -5 }},
		{"max members below two", func(s *Settings) { s.Events.MaxMembers = 1 }},
		{"latitude out of range", func(s *Settings) { s.Site.Latitude = 91 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(s)
			err := ValidateSettings(s)
			require.Error(t, err)
			var ve ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

func TestLocation_DefaultsToCentral(t *testing.T) {
	s := validSettings()
	s.Site.TimeZone = ""
	loc, err := s.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", loc.String())
}

func TestLocation_InvalidZone(t *testing.T) {
	s := validSettings()
	s.Site.TimeZone = "Mars/Olympus_Mons"
	_, err := s.Location()
	require.Error(t, err)
}
