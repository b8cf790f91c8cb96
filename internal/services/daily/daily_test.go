package daily

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilmoon/oracle/internal/catalog"
)

func TestDayKeyObservesTimezone(t *testing.T) {
	// 23:30 UTC straddles the date line: already tomorrow in Auckland,
	// still today on the US west coast.
	at := time.Date(2024, 3, 7, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		timezone string
		want     string
	}{
		{"Pacific/Auckland", "2024-03-08"},
		{"America/Los_Angeles", "2024-03-07"},
		{"UTC", "2024-03-07"},
		{"", "2024-03-07"},
		{"Not/AZone", "2024-03-07"},
	}

	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			assert.Equal(t, tt.want, DayKey(at, tt.timezone))
		})
	}
}

func TestDayKeyStableWithinLocalDay(t *testing.T) {
	morning := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 7, 1, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, DayKey(morning, "Europe/Berlin"), DayKey(evening, "Europe/Berlin"))
}

func TestIndexDeterministic(t *testing.T) {
	first := Index("ana@example.com", "2024-03-07", "secret", 12)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Index("ana@example.com", "2024-03-07", "secret", 12))
	}
	assert.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, 12)
}

func TestIndexNormalizesUserCase(t *testing.T) {
	assert.Equal(t,
		Index("ANA@Example.com", "2024-03-07", "secret", 12),
		Index("ana@example.com", "2024-03-07", "secret", 12),
	)
}

func TestIndexStaysInRange(t *testing.T) {
	for _, size := range []int{1, 2, 7, 12, 44} {
		for day := 1; day <= 28; day++ {
			idx := Index("ana@example.com", fmt.Sprintf("2024-02-%02d", day), "secret", size)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, size)
		}
	}
}

func TestIndexVariesAcrossDays(t *testing.T) {
	first := Index("ana@example.com", "2024-01-01", "secret", 12)
	varied := false
	for day := 2; day <= 40; day++ {
		dateKey := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, day-1).Format("2006-01-02")
		if Index("ana@example.com", dateKey, "secret", 12) != first {
			varied = true
			break
		}
	}
	assert.True(t, varied, "draw should not be constant across 40 distinct days")
}

func TestIndexDependsOnSecret(t *testing.T) {
	varied := false
	for day := 1; day <= 40; day++ {
		dateKey := fmt.Sprintf("2024-03-%02d", day%28+1)
		if Index("ana@example.com", dateKey, "secret-a", 12) != Index("ana@example.com", dateKey, "secret-b", 12) {
			varied = true
			break
		}
	}
	assert.True(t, varied, "different secrets should change at least one draw")
}

func TestServiceDrawReproducibleWithinDay(t *testing.T) {
	deck, err := catalog.LoadEmbedded()
	require.NoError(t, err)

	svc := NewService(deck, "secret")
	svc.now = func() time.Time {
		return time.Date(2024, 3, 7, 15, 0, 0, 0, time.UTC)
	}

	first := svc.Draw("ana@example.com", "America/Los_Angeles")
	second := svc.Draw("ANA@Example.com", "America/Los_Angeles")

	assert.Equal(t, "2024-03-07", first.DateKey)
	assert.Equal(t, first.Card.ID, second.Card.ID)
}

func TestServiceDrawDifferentUsersIndependent(t *testing.T) {
	deck, err := catalog.LoadEmbedded()
	require.NoError(t, err)

	svc := NewService(deck, "secret")
	svc.now = func() time.Time {
		return time.Date(2024, 3, 7, 15, 0, 0, 0, time.UTC)
	}

	// Not asserting inequality (two users can share a card); only that each
	// user's result is stable.
	for _, email := range []string{"ana@example.com", "bo@example.com", "cy@example.com"} {
		first := svc.Draw(email, "UTC")
		second := svc.Draw(email, "UTC")
		assert.Equal(t, first, second)
	}
}
