// Package mooncalc computes lunar phase enrichment for timestamped photos.
// Night activity on the ranch tracks the moon, so every observation and event
// carries phase name, illumination and age.
package mooncalc

import (
	"fmt"
	"math"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sj14/astral/pkg/astral"
)

// SynodicMonth is the average length of a lunation in days.
const SynodicMonth = 29.53058867

// MoonInfo holds the computed lunar state for one instant.
type MoonInfo struct {
	PhaseName    string
	Illumination float64 // 0..1
	AgeDays      float64 // days since new moon, astral's 0..28 scale
}

// MoonCalc computes and caches moon info. Results are cached per minute of
// local time; the batch revisits the same stamps often when re-running over
// an appended photo set.
type MoonCalc struct {
	cache *cache.Cache
	loc   *time.Location
}

// New creates a MoonCalc for the given camera site timezone. A nil location
// falls back to UTC.
func New(loc *time.Location) *MoonCalc {
	if loc == nil {
		loc = time.UTC
	}
	return &MoonCalc{
		cache: cache.New(cache.NoExpiration, 0),
		loc:   loc,
	}
}

// MoonInfo returns the lunar state at the given time. Naive use is fine from
// multiple goroutines; the underlying cache is safe for concurrent access.
func (mc *MoonCalc) MoonInfo(t time.Time) MoonInfo {
	local := t.In(mc.loc)
	key := local.Format("2006-01-02 15:04")

	if cached, found := mc.cache.Get(key); found {
		return cached.(MoonInfo)
	}

	age := astral.MoonPhase(local)
	info := MoonInfo{
		PhaseName:    phaseName(age),
		Illumination: illuminationFromAge(age),
		AgeDays:      age,
	}
	mc.cache.Set(key, info, cache.NoExpiration)
	return info
}

// phaseName buckets the moon age into the eight common phase names.
func phaseName(age float64) string {
	switch {
	case age < 1.0 || age > 28.5:
		return "New"
	case age < 6.0:
		return "Waxing Crescent"
	case age < 8.5:
		return "First Quarter"
	case age < 14.0:
		return "Waxing Gibbous"
	case age < 16.0:
		return "Full"
	case age < 21.0:
		return "Waning Gibbous"
	case age < 23.5:
		return "Last Quarter"
	default:
		return "Waning Crescent"
	}
}

// illuminationFromAge computes the illuminated fraction:
// (1 − cos(2π · age / period)) / 2
func illuminationFromAge(age float64) float64 {
	age = math.Mod(age, SynodicMonth)
	angle := 2 * math.Pi * (age / SynodicMonth)
	return (1 - math.Cos(angle)) / 2
}

// FormatIllumination renders illumination the way the observation table
// stores it.
func FormatIllumination(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

// FormatAge renders moon age the way the observation table stores it.
func FormatAge(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
