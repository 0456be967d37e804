package suncalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// La Grange, TX
const (
	testLat = 29.905
	testLon = -96.877
)

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	return loc
}

func TestGetSunEventTimes(t *testing.T) {
	loc := testLocation(t)
	sc := NewSunCalc(testLat, testLon, loc)

	date := time.Date(2026, 1, 18, 12, 0, 0, 0, loc)

	times, err := sc.GetSunEventTimes(date)
	require.NoError(t, err)

	assert.False(t, times.Sunrise.IsZero())
	assert.False(t, times.Sunset.IsZero())
	assert.True(t, times.CivilDawn.Before(times.Sunrise))
	assert.True(t, times.Sunset.Before(times.CivilDusk))

	// cache returns identical values
	cached, err := sc.GetSunEventTimes(date)
	require.NoError(t, err)
	assert.True(t, times.Sunrise.Equal(cached.Sunrise))
	assert.True(t, times.Sunset.Equal(cached.Sunset))
}

func TestIsNight(t *testing.T) {
	loc := testLocation(t)
	sc := NewSunCalc(testLat, testLon, loc)

	// Midday in January is daylight in central Texas
	noon := time.Date(2026, 1, 18, 12, 30, 0, 0, loc)
	assert.False(t, sc.IsNight(noon))

	// Two in the morning is not
	night := time.Date(2026, 1, 18, 2, 0, 0, 0, loc)
	assert.True(t, sc.IsNight(night))
}

func TestNewSunCalc_NilLocation(t *testing.T) {
	sc := NewSunCalc(testLat, testLon, nil)
	require.NotNil(t, sc)
	assert.Equal(t, time.UTC, sc.loc)
}
