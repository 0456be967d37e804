package mooncalc

import (
	"testing"
	"time"

	"github.com/sj14/astral/pkg/astral"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoonInfo_KnownNewMoon(t *testing.T) {
	mc := New(time.UTC)

	// New moon of 2000-01-06 18:14 UTC
	info := mc.MoonInfo(time.Date(2000, 1, 6, 18, 14, 0, 0, time.UTC))

	assert.Equal(t, "New", info.PhaseName)
	assert.Less(t, info.AgeDays, 1.0)
	assert.Less(t, info.Illumination, 0.05)
}

func TestMoonInfo_KnownFullMoon(t *testing.T) {
	mc := New(time.UTC)

	// Full moon of 2000-01-21
	info := mc.MoonInfo(time.Date(2000, 1, 21, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, "Full", info.PhaseName)
	assert.InDelta(t, 1.0, info.Illumination, 0.01)
	assert.InDelta(t, 14.8, info.AgeDays, 0.5)
}

// The age must come straight from astral, not a local approximation; the two
// drift apart by up to a day within a single lunation.
func TestMoonInfo_AgeMatchesAstral(t *testing.T) {
	mc := New(time.UTC)

	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for day := 0; day < 30; day++ {
		ts := start.AddDate(0, 0, day)
		info := mc.MoonInfo(ts)
		want := astral.MoonPhase(ts)
		assert.Equal(t, want, info.AgeDays, "day %v", ts)
		assert.Equal(t, phaseName(want), info.PhaseName, "day %v", ts)
	}
}

func TestMoonInfo_March2025Phases(t *testing.T) {
	mc := New(time.UTC)

	mid := mc.MoonInfo(time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "Full", mid.PhaseName)
	assert.InDelta(t, 15.98, mid.AgeDays, 0.1)

	late := mc.MoonInfo(time.Date(2025, 3, 28, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "Waning Crescent", late.PhaseName)
	assert.InDelta(t, 26.94, late.AgeDays, 0.1)
}

func TestMoonInfo_AgeAlwaysInRange(t *testing.T) {
	mc := New(time.UTC)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 60; day++ {
		info := mc.MoonInfo(start.AddDate(0, 0, day))
		assert.GreaterOrEqual(t, info.AgeDays, 0.0)
		assert.Less(t, info.AgeDays, SynodicMonth)
		assert.GreaterOrEqual(t, info.Illumination, 0.0)
		assert.LessOrEqual(t, info.Illumination, 1.0)
		assert.NotEmpty(t, info.PhaseName)
	}
}

func TestMoonInfo_PreEpochTime(t *testing.T) {
	mc := New(time.UTC)

	info := mc.MoonInfo(time.Date(1999, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.GreaterOrEqual(t, info.AgeDays, 0.0)
	assert.Less(t, info.AgeDays, SynodicMonth)
}

func TestMoonInfo_Cached(t *testing.T) {
	mc := New(time.UTC)

	ts := time.Date(2026, 1, 18, 15, 58, 0, 0, time.UTC)
	first := mc.MoonInfo(ts)
	second := mc.MoonInfo(ts)
	assert.Equal(t, first, second)
}

func TestNew_NilLocationDefaultsToUTC(t *testing.T) {
	mc := New(nil)
	require.NotNil(t, mc)
	assert.Equal(t, time.UTC, mc.loc)
}

func TestPhaseName_Buckets(t *testing.T) {
	tests := []struct {
		age  float64
		want string
	}{
		{0.2, "New"},
		{29.0, "New"},
		{3.0, "Waxing Crescent"},
		{7.0, "First Quarter"},
		{10.0, "Waxing Gibbous"},
		{15.0, "Full"},
		{18.0, "Waning Gibbous"},
		{22.0, "Last Quarter"},
		{26.0, "Waning Crescent"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, phaseName(tt.age), "age %v", tt.age)
	}
}
