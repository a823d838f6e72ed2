// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package hcaptcha verifies hCaptcha tokens submitted with the contact form.
package hcaptcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/olegiv/folio/internal/contact"
)

const (
	// DefaultVerifyURL is the hCaptcha verification endpoint.
	DefaultVerifyURL = "https://api.hcaptcha.com/siteverify"
	// FormField is the form field the widget posts its token in.
	FormField = "h-captcha-response"

	verifyTimeout = 10 * time.Second
)

// VerifyResponse represents the hCaptcha API response.
type VerifyResponse struct {
	Success     bool      `json:"success"`
	ChallengeTS time.Time `json:"challenge_ts"`
	Hostname    string    `json:"hostname"`
	ErrorCodes  []string  `json:"error-codes"`
}

// RejectedError is returned when hCaptcha answers with success=false.
type RejectedError struct {
	Codes []string
}

func (e *RejectedError) Error() string {
	if len(e.Codes) == 0 {
		return "captcha rejected"
	}
	return "captcha rejected: " + strings.Join(e.Codes, ", ")
}

// Verifier checks tokens against the hCaptcha API.
type Verifier struct {
	siteKey   string
	secretKey string
	verifyURL string
	client    *http.Client
	logger    *slog.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithVerifyURL overrides the verification endpoint.
func WithVerifyURL(u string) Option {
	return func(v *Verifier) { v.verifyURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(v *Verifier) { v.client = c }
}

// New creates a verifier for the given key pair.
func New(siteKey, secretKey string, logger *slog.Logger, opts ...Option) *Verifier {
	v := &Verifier{
		siteKey:   siteKey,
		secretKey: secretKey,
		verifyURL: DefaultVerifyURL,
		client:    &http.Client{Timeout: verifyTimeout},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SiteKey returns the public site key.
func (v *Verifier) SiteKey() string {
	return v.siteKey
}

// Verify checks token with the hCaptcha API. An empty token yields
// contact.ErrCaptchaMissing without a network call.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) error {
	if strings.TrimSpace(token) == "" {
		v.logger.DebugContext(ctx, "captcha response empty")
		return contact.ErrCaptchaMissing
	}

	data := url.Values{}
	data.Set("secret", v.secretKey)
	data.Set("response", token)
	data.Set("sitekey", v.siteKey)
	if remoteIP != "" {
		data.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("creating captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("captcha verification request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var result VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to parse captcha response: %w", err)
	}

	if !result.Success {
		v.logger.WarnContext(ctx, "captcha verification failed",
			"error_codes", result.ErrorCodes,
			"remote_ip", remoteIP,
		)
		return &RejectedError{Codes: result.ErrorCodes}
	}
	return nil
}

// IsRejected reports whether err came from hCaptcha declining the token.
func IsRejected(err error) bool {
	var re *RejectedError
	return errors.As(err, &re)
}

// ResponseFromForm extracts the widget token from an HTTP request.
func ResponseFromForm(r *http.Request) string {
	return r.FormValue(FormField)
}

// Widget renders the hCaptcha script and widget container for theme.
func (v *Verifier) Widget(theme string) template.HTML {
	var html strings.Builder
	html.WriteString(`<script src="https://js.hcaptcha.com/1/api.js" async defer></script>`)
	html.WriteString(fmt.Sprintf(
		`<div class="h-captcha" data-sitekey="%s" data-theme="%s"></div>`,
		template.HTMLEscapeString(v.siteKey),
		template.HTMLEscapeString(theme),
	))
	return template.HTML(html.String())
}
