// Package mailer subscribes contacts to the Mailchimp audience.
package mailer

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrConsentRequired rejects subscriptions without explicit consent;
	// non-consenting input never reaches the Mailchimp API.
	ErrConsentRequired = errors.New("subscription consent is required")
	// ErrNotConfigured is returned when the API key or audience is missing.
	ErrNotConfigured = errors.New("mailchimp is not configured")
)

// Config holds Mailchimp settings.
type Config struct {
	APIKey     string
	AudienceID string
	Tag        string
	// BaseURL overrides the data-center URL derived from the API key.
	BaseURL string
	Timeout time.Duration
}

// SubscribeInput contains normalized subscription data.
type SubscribeInput struct {
	Email     string
	FirstName string
	Consent   bool
}

// Client performs idempotent member upserts against the Mailchimp API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a new Mailchimp client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Tag == "" {
		cfg.Tag = "oracle_daily"
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Subscribe upserts the contact as a subscribed member. The member is keyed
// by the MD5 of the lowercased email, so repeat subscriptions are idempotent.
func (c *Client) Subscribe(ctx context.Context, input SubscribeInput) error {
	if !input.Consent {
		return ErrConsentRequired
	}

	base, err := c.baseURL()
	if err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	sum := md5.Sum([]byte(email))
	url := fmt.Sprintf("%s/lists/%s/members/%s", base, c.cfg.AudienceID, hex.EncodeToString(sum[:]))

	body, err := json.Marshal(map[string]any{
		"email_address": email,
		"status_if_new": "subscribed",
		"status":        "subscribed",
		"merge_fields":  map[string]string{"FNAME": input.FirstName},
		"tags":          []string{c.cfg.Tag},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", basicAuth(c.cfg.APIKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailchimp request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mailchimp upsert failed: status %d: %s", resp.StatusCode, detail)
	}
	return nil
}

// baseURL returns the API root, deriving the data center from the key
// suffix ("-us21" style) when no override is set.
func (c *Client) baseURL() (string, error) {
	if c.cfg.BaseURL != "" {
		return strings.TrimSuffix(c.cfg.BaseURL, "/"), nil
	}
	if c.cfg.APIKey == "" || c.cfg.AudienceID == "" {
		return "", ErrNotConfigured
	}
	i := strings.LastIndex(c.cfg.APIKey, "-")
	if i < 0 || i == len(c.cfg.APIKey)-1 {
		return "", fmt.Errorf("mailchimp api key has no data-center suffix")
	}
	return fmt.Sprintf("https://%s.api.mailchimp.com/3.0", c.cfg.APIKey[i+1:]), nil
}

func basicAuth(apiKey string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte("anystring:"+apiKey))
}
