package reading

import "time"

// Config holds reading generation settings.
type Config struct {
	// API configuration. An empty APIKey disables remote generation and
	// every reading uses the local fallback.
	APIKey     string
	BaseURL    string
	Model      string
	MaxRetries int
	Timeout    time.Duration

	// Output limit passed to the model.
	MaxOutputTokens int
}

// DefaultConfig returns production-ready defaults; the API key must be
// supplied by the caller.
func DefaultConfig() Config {
	return Config{
		BaseURL:         "https://api.openai.com/v1",
		Model:           "gpt-4.1-mini",
		MaxRetries:      2,
		Timeout:         30 * time.Second,
		MaxOutputTokens: 420,
	}
}
