// Package reading generates the personalized daily reading.
//
// Generation degrades, never fails: when the text model is unconfigured,
// unreachable, or errors, a deterministic local composition is returned and
// the caller sees a normal reading.
package reading

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veilmoon/oracle/internal/models"
)

// Input carries everything a reading is personalized with.
type Input struct {
	FirstName string
	Card      models.OracleCard
	Astro     models.AstroContext
}

// Reading is a generated reading.
type Reading struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Model    string `json:"model,omitempty"`
	Fallback bool   `json:"fallback"`
}

// Service generates readings via the OpenAI responses API.
type Service struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewService creates a reading service. Zero-value config fields take the
// defaults from DefaultConfig.
func NewService(cfg Config, logger *zap.Logger) *Service {
	defaults := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = defaults.MaxOutputTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Generate returns the personalized reading, falling back to the local
// composition when the model is unavailable or returns nothing usable.
func (s *Service) Generate(ctx context.Context, input Input) Reading {
	if s.cfg.APIKey == "" {
		return s.fallback(input)
	}

	text, err := s.callModel(ctx, Prompt(input))
	if err != nil {
		s.logger.Warn("reading generation failed, using fallback", zap.Error(err))
		return s.fallback(input)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return s.fallback(input)
	}

	return Reading{ID: uuid.New().String(), Text: text, Model: s.cfg.Model}
}

func (s *Service) fallback(input Input) Reading {
	return Reading{ID: uuid.New().String(), Text: FallbackText(input), Fallback: true}
}

// FallbackText composes the deterministic local reading.
func FallbackText(input Input) string {
	return strings.Join([]string{
		fmt.Sprintf("%s, today's energy is anchored in %s.", input.FirstName, input.Card.Title),
		input.Card.ReadingNotes,
		fmt.Sprintf("Astro context now: Sun in %s, Moon in %s (%s, %s).",
			input.Astro.SunSign, input.Astro.MoonSign, input.Astro.LocalTimestamp, input.Astro.Timezone),
		"Take one grounded action from this message today, and one gentle action that honors your heart.",
	}, "\n\n")
}

// Prompt builds the fully specified model prompt for an input.
func Prompt(input Input) string {
	lines := []string{
		"You are writing a short, poetic but clear oracle reading.",
		"Constraints:",
		"- 170 to 240 words.",
		"- 2 short paragraphs max.",
		"- Warm, mystical, grounded tone.",
		"- Personalize by first name.",
		"- Use card symbolism and reading notes faithfully.",
		"- Include current Sun and Moon sign context naturally, no bullet list.",
		"- Avoid fear language and deterministic claims.",
		"- End with one practical next step sentence.",
		"",
		"First name: " + input.FirstName,
		"Card title: " + input.Card.Title,
		"Card description: " + input.Card.Description,
		"Card reading notes: " + input.Card.ReadingNotes,
		"Card questions: " + strings.Join(input.Card.Questions, " | "),
		fmt.Sprintf("Card energies: chakra=%s, planet=%s, sign=%s",
			input.Card.RelatedEnergies.Chakra, input.Card.RelatedEnergies.Planet, input.Card.RelatedEnergies.Sign),
		fmt.Sprintf("Current astrology: Sun in %s, Moon in %s", input.Astro.SunSign, input.Astro.MoonSign),
		fmt.Sprintf("Local timestamp: %s (%s)", input.Astro.LocalTimestamp, input.Astro.Timezone),
	}
	return strings.Join(lines, "\n")
}

// callModel posts the prompt to the responses endpoint, retrying 5xx and
// transport errors with linear backoff.
func (s *Service) callModel(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(map[string]any{
		"model":             s.cfg.Model,
		"input":             prompt,
		"max_output_tokens": s.cfg.MaxOutputTokens,
	})
	if err != nil {
		return "", err
	}

	var resp *http.Response
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/responses", bytes.NewReader(reqBody))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

		resp, err = s.httpClient.Do(req)
		if err == nil && resp.StatusCode < 500 {
			break
		}
		if resp != nil {
			resp.Body.Close()
		}
		if attempt >= s.cfg.MaxRetries {
			if err != nil {
				return "", err
			}
			return "", fmt.Errorf("model API returned %d", resp.StatusCode)
		}
		time.Sleep(time.Duration(attempt+1) * time.Second)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model API error %d: %s", resp.StatusCode, body)
	}

	var result struct {
		OutputText string `json:"output_text"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	return result.OutputText, nil
}
