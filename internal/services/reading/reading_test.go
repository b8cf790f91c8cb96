package reading

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veilmoon/oracle/internal/models"
)

func testInput() Input {
	return Input{
		FirstName: "Ana",
		Card: models.OracleCard{
			ID:           7,
			Title:        "The Quiet Dawn",
			Description:  "A pale sun rises over still water.",
			ReadingNotes: "Begin before you feel ready.",
			Questions:    []string{"What would I start today?", "Where am I waiting?"},
			RelatedEnergies: models.RelatedEnergies{
				Chakra: "Solar Plexus",
				Planet: "Sun",
				Sign:   "Leo",
			},
			Quote: "Every dawn is a door left unlocked.",
		},
		Astro: models.AstroContext{
			Timezone:       "America/Los_Angeles",
			LocalTimestamp: "Monday, March 25, 2024 at 5:00 AM",
			SunSign:        "Aries",
			MoonSign:       "Virgo",
		},
	}
}

func TestGenerateFallsBackWhenUnconfigured(t *testing.T) {
	svc := NewService(Config{}, zap.NewNop())

	got := svc.Generate(context.Background(), testInput())

	assert.True(t, got.Fallback)
	assert.Equal(t, FallbackText(testInput()), got.Text)
	assert.NotEmpty(t, got.ID)
}

func TestFallbackTextComposition(t *testing.T) {
	text := FallbackText(testInput())

	parts := strings.Split(text, "\n\n")
	require.Len(t, parts, 4)
	assert.Equal(t, "Ana, today's energy is anchored in The Quiet Dawn.", parts[0])
	assert.Equal(t, "Begin before you feel ready.", parts[1])
	assert.Equal(t, "Astro context now: Sun in Aries, Moon in Virgo (Monday, March 25, 2024 at 5:00 AM, America/Los_Angeles).", parts[2])
	assert.Equal(t, "Take one grounded action from this message today, and one gentle action that honors your heart.", parts[3])

	// Deterministic: same input, same text.
	assert.Equal(t, text, FallbackText(testInput()))
}

func TestGenerateCallsModel(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotBody map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"output_text": "  A short reading.  "})
	}))
	defer server.Close()

	svc := NewService(Config{APIKey: "test-key", BaseURL: server.URL, Model: "gpt-4.1-mini"}, zap.NewNop())

	got := svc.Generate(context.Background(), testInput())

	assert.Equal(t, "/responses", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4.1-mini", gotBody["model"])
	assert.Equal(t, float64(420), gotBody["max_output_tokens"])
	assert.Equal(t, Prompt(testInput()), gotBody["input"])

	assert.False(t, got.Fallback)
	assert.Equal(t, "A short reading.", got.Text)
	assert.Equal(t, "gpt-4.1-mini", got.Model)
}

func TestGenerateFallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewService(Config{APIKey: "test-key", BaseURL: server.URL, MaxRetries: 0}, zap.NewNop())

	got := svc.Generate(context.Background(), testInput())

	assert.True(t, got.Fallback)
	assert.Equal(t, FallbackText(testInput()), got.Text)
}

func TestGenerateFallsBackOnEmptyOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"output_text": "   "})
	}))
	defer server.Close()

	svc := NewService(Config{APIKey: "test-key", BaseURL: server.URL}, zap.NewNop())

	got := svc.Generate(context.Background(), testInput())

	assert.True(t, got.Fallback)
}

func TestPromptIsFullySpecified(t *testing.T) {
	prompt := Prompt(testInput())

	for _, want := range []string{
		"170 to 240 words",
		"2 short paragraphs max",
		"Avoid fear language",
		"End with one practical next step sentence.",
		"First name: Ana",
		"Card title: The Quiet Dawn",
		"Card questions: What would I start today? | Where am I waiting?",
		"Card energies: chakra=Solar Plexus, planet=Sun, sign=Leo",
		"Current astrology: Sun in Aries, Moon in Virgo",
		"Local timestamp: Monday, March 25, 2024 at 5:00 AM (America/Los_Angeles)",
	} {
		assert.Contains(t, prompt, want)
	}

	// Deterministic prompt for identical input.
	assert.Equal(t, prompt, Prompt(testInput()))
}
