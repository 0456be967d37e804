// Package stamp extracts the date, time and temperature a trail camera burns
// into the photo border. The OCR engine itself is an external collaborator;
// this package only parses the text it returns.
package stamp

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Stamp is the parsed on-image stamp. Date and Time keep the camera's locale
// format (MM/DD/YYYY and H:MM AM/PM); either may be empty when the OCR text
// did not contain them.
type Stamp struct {
	Date    string
	Time    string
	TempF   int
	TempC   int
	HasTemp bool
	RawText string
}

var (
	dateRe  = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`)
	timeRe  = regexp.MustCompile(`(?i)\b(\d{1,2}:\d{2})\s*([AP]M)\b`)
	// no leading \b: it would sit between space and '-' and lose the sign
	tempFRe = regexp.MustCompile(`(?i)(-?\d{1,3})\s*°?\s*F\b`)
	tempCRe = regexp.MustCompile(`(?i)(-?\d{1,3})\s*°?\s*C\b`)
)

// Parse extracts stamp fields from raw OCR text. Missing fields stay empty;
// Parse never fails, a stamp that cannot be read simply yields no timestamp.
func Parse(text string) Stamp {
	clean := strings.Join(strings.Fields(text), " ")

	s := Stamp{RawText: clean}

	if m := dateRe.FindStringSubmatch(clean); m != nil {
		s.Date = m[1]
	}
	if m := timeRe.FindStringSubmatch(clean); m != nil {
		s.Time = m[1] + " " + strings.ToUpper(m[2])
	}

	mf := tempFRe.FindStringSubmatch(clean)
	mc := tempCRe.FindStringSubmatch(clean)
	if mf != nil || mc != nil {
		s.HasTemp = true
		switch {
		case mf != nil && mc != nil:
			s.TempF, _ = strconv.Atoi(mf[1])
			s.TempC, _ = strconv.Atoi(mc[1])
		case mf != nil:
			s.TempF, _ = strconv.Atoi(mf[1])
			s.TempC = fahrenheitToCelsius(s.TempF)
		default:
			s.TempC, _ = strconv.Atoi(mc[1])
			s.TempF = celsiusToFahrenheit(s.TempC)
		}
	}

	return s
}

// Timestamp composes the stamp's date and time into a local timestamp.
// Returns false when either part is missing or unparseable.
func (s Stamp) Timestamp(loc *time.Location) (time.Time, bool) {
	if s.Date == "" || s.Time == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("1/2/2006 3:04 PM", s.Date+" "+s.Time, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func fahrenheitToCelsius(f int) int {
	return int(math.Round(float64(f-32) * 5.0 / 9.0))
}

func celsiusToFahrenheit(c int) int {
	return int(math.Round(float64(c)*9.0/5.0 + 32))
}
