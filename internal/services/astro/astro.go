// Package astro derives a coarse astrological context from the current sky.
// The closed-form longitude approximations are sufficient for sign-level
// resolution only.
package astro

import (
	"math"
	"time"

	"github.com/veilmoon/oracle/internal/models"
)

// The twelve signs in canonical order, each owning a 30 degree band of
// ecliptic longitude starting at Aries.
var zodiacSigns = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Service computes astro context for readings.
type Service struct {
	now func() time.Time
}

// NewService creates an astro service using the system clock.
func NewService() *Service {
	return &Service{now: time.Now}
}

// Context returns the current sun and moon signs plus a human-readable local
// timestamp in the given timezone. Unknown zones fall back to UTC.
func (s *Service) Context(timezone string) models.AstroContext {
	now := s.now()
	loc, err := time.LoadLocation(timezone)
	if err != nil || loc == nil {
		loc = time.UTC
	}
	return models.AstroContext{
		Timezone:       timezone,
		LocalTimestamp: now.In(loc).Format("Monday, January 2, 2006 at 3:04 PM"),
		SunSign:        SignFromLongitude(SolarLongitude(now)),
		MoonSign:       SignFromLongitude(LunarLongitude(now)),
	}
}

// NormalizeDegrees wraps an angle into [0, 360).
func NormalizeDegrees(v float64) float64 {
	r := math.Mod(v, 360)
	if r < 0 {
		r += 360
	}
	return r
}

// SignFromLongitude maps an ecliptic longitude onto one of the twelve fixed
// zodiac bands. Out-of-range inputs are normalized before mapping.
func SignFromLongitude(longitude float64) string {
	idx := int(NormalizeDegrees(longitude) / 30)
	if idx < 0 || idx > 11 {
		return zodiacSigns[0]
	}
	return zodiacSigns[idx]
}

func julianDay(t time.Time) float64 {
	return float64(t.UnixMilli())/86400000 + 2440587.5
}

func toRadians(v float64) float64 {
	return v * math.Pi / 180
}

// SolarLongitude approximates the Sun's ecliptic longitude in degrees.
func SolarLongitude(t time.Time) float64 {
	d := julianDay(t) - 2451545.0
	g := NormalizeDegrees(357.529 + 0.98560028*d)
	q := NormalizeDegrees(280.459 + 0.98564736*d)
	l := q + 1.915*math.Sin(toRadians(g)) + 0.020*math.Sin(toRadians(2*g))
	return NormalizeDegrees(l)
}

// LunarLongitude approximates the Moon's ecliptic longitude in degrees using
// the five largest periodic terms.
func LunarLongitude(t time.Time) float64 {
	d := julianDay(t) - 2451545.0

	l0 := NormalizeDegrees(218.316 + 13.176396*d)
	mMoon := NormalizeDegrees(134.963 + 13.064993*d)
	mSun := NormalizeDegrees(357.529 + 0.98560028*d)
	dMoon := NormalizeDegrees(297.850 + 12.190749*d)

	lon := l0 +
		6.289*math.Sin(toRadians(mMoon)) +
		1.274*math.Sin(toRadians(2*dMoon-mMoon)) +
		0.658*math.Sin(toRadians(2*dMoon)) +
		0.214*math.Sin(toRadians(2*mMoon)) -
		0.186*math.Sin(toRadians(mSun))

	return NormalizeDegrees(lon)
}
