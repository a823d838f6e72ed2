// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package relay sends contact messages through a hosted email relay
// (EmailJS REST API). Each call makes exactly one delivery attempt.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client configuration constants
const (
	DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"
	RequestTimeout  = 10 * time.Second
	MaxResponseLen  = 10 * 1024 // Maximum provider response kept for error reporting (10KB)
	UserAgent       = "folio/1.0"
)

// ErrNotConfigured is returned when one of the three relay identifiers is missing.
var ErrNotConfigured = errors.New("relay not configured")

// Config identifies the relay account and template.
type Config struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string // Optional access token for strict mode accounts
	Endpoint   string
	Timeout    time.Duration
}

// Configured reports whether all three required identifiers are present.
func (c Config) Configured() bool {
	return len(c.Missing()) == 0
}

// Missing returns the names of the absent required identifiers.
func (c Config) Missing() []string {
	var missing []string
	if strings.TrimSpace(c.ServiceID) == "" {
		missing = append(missing, "service_id")
	}
	if strings.TrimSpace(c.TemplateID) == "" {
		missing = append(missing, "template_id")
	}
	if strings.TrimSpace(c.PublicKey) == "" {
		missing = append(missing, "public_key")
	}
	return missing
}

// Error is a non-2xx answer from the relay.
type Error struct {
	StatusCode int
	Text       string
}

func (e *Error) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("relay returned status %d", e.StatusCode)
	}
	return e.Text
}

// payload is the JSON body accepted by the relay's send endpoint.
type payload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Client posts template parameters to the relay.
type Client struct {
	cfg  Config
	http *http.Client
}

// New creates a relay client. A nil httpClient gets a default with RequestTimeout.
func New(cfg Config, httpClient *http.Client) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = RequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{cfg: cfg, http: httpClient}
}

// Config returns the client's configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Send performs a single POST of the template parameters.
// It returns ErrNotConfigured without touching the network when identifiers are missing.
func (c *Client) Send(ctx context.Context, params map[string]string) error {
	if missing := c.cfg.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrNotConfigured, strings.Join(missing, ", "))
	}

	body, err := json.Marshal(payload{
		ServiceID:      c.cfg.ServiceID,
		TemplateID:     c.cfg.TemplateID,
		UserID:         c.cfg.PublicKey,
		AccessToken:    c.cfg.PrivateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("encoding relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			StatusCode: resp.StatusCode,
			Text:       strings.TrimSpace(string(respBody)),
		}
	}
	return nil
}
