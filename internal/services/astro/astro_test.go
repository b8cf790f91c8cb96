package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{359.9, 359.9},
		{360, 0},
		{725, 5},
		{-45, 315},
		{-360, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeDegrees(tt.in), 1e-9, "NormalizeDegrees(%v)", tt.in)
	}
}

func TestSignFromLongitude(t *testing.T) {
	tests := []struct {
		longitude float64
		want      string
	}{
		{0, "Aries"},
		{29.99, "Aries"},
		{30, "Taurus"},
		{59.99, "Taurus"},
		{60, "Gemini"},
		{180, "Libra"},
		{330, "Pisces"},
		{359.9, "Pisces"},
		{360, "Aries"},
		{390, "Taurus"},
		{-0.1, "Pisces"},
		{-30, "Pisces"},
		{-330, "Taurus"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SignFromLongitude(tt.longitude), "longitude %v", tt.longitude)
	}
}

func TestSolarLongitudeAtEquinoxAndSolstice(t *testing.T) {
	// March equinox 2024: solar longitude crosses 0.
	equinox := time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC)
	lon := SolarLongitude(equinox)
	nearZero := lon < 1 || lon > 359
	assert.True(t, nearZero, "equinox longitude = %v", lon)

	// June solstice 2024: solar longitude crosses 90.
	solstice := time.Date(2024, 6, 20, 20, 51, 0, 0, time.UTC)
	assert.InDelta(t, 90, SolarLongitude(solstice), 1)
}

func TestLunarLongitudeInRange(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		lon := LunarLongitude(at.AddDate(0, 0, i))
		assert.GreaterOrEqual(t, lon, 0.0)
		assert.Less(t, lon, 360.0)
	}
}

func validSign(s string) bool {
	for _, sign := range zodiacSigns {
		if s == sign {
			return true
		}
	}
	return false
}

func TestContext(t *testing.T) {
	svc := NewService()
	svc.now = func() time.Time {
		return time.Date(2024, 3, 25, 12, 0, 0, 0, time.UTC)
	}

	ctx := svc.Context("America/Los_Angeles")

	assert.Equal(t, "America/Los_Angeles", ctx.Timezone)
	assert.Equal(t, "Monday, March 25, 2024 at 5:00 AM", ctx.LocalTimestamp)
	// Five days after the equinox the Sun sits in early Aries.
	assert.Equal(t, "Aries", ctx.SunSign)
	assert.True(t, validSign(ctx.MoonSign), "moon sign %q", ctx.MoonSign)
}

func TestContextFallsBackToUTC(t *testing.T) {
	svc := NewService()
	svc.now = func() time.Time {
		return time.Date(2024, 3, 25, 12, 0, 0, 0, time.UTC)
	}

	ctx := svc.Context("Not/AZone")

	assert.Equal(t, "Not/AZone", ctx.Timezone)
	assert.Equal(t, "Monday, March 25, 2024 at 12:00 PM", ctx.LocalTimestamp)
}
