// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contact

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"
)

// Status is the terminal outcome of one submission attempt.
type Status string

// Submission outcomes.
const (
	StatusInvalid     Status = "invalid"
	StatusConfigError Status = "config_error"
	StatusFailed      Status = "failed"
	StatusSent        Status = "sent"
)

// User-facing messages.
const (
	MsgSent           = "Message sent successfully! I'll get back to you soon."
	MsgCaptchaMissing = "Please complete the captcha"
	MsgCaptchaFailed  = "Captcha verification failed"
	FieldCaptcha      = "captcha"
)

// Result describes the outcome of Submit.
type Result struct {
	Status       Status
	Errors       FieldErrors // Set when Status is StatusInvalid
	Message      string      // Banner text for config, failure and success outcomes
	SubmissionID string
	Input        Input // Normalized input
}

// Meta is request context attached to a submission.
type Meta struct {
	RemoteIP     string
	UserAgent    string
	CaptchaToken string
}

// CaptchaVerifier checks an anti-bot token. A nil verifier disables the check.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// CountryLookup resolves an IP to a country code for logging.
type CountryLookup interface {
	LookupCountry(ip string) string
}

// ErrCaptchaMissing is returned by verifiers when no token was supplied.
var ErrCaptchaMissing = errors.New("missing captcha response")

// Service validates submissions and hands them to a Deliverer.
type Service struct {
	deliverer  Deliverer
	ownerEmail string
	captcha    CaptchaVerifier
	geo        CountryLookup
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

// Option configures a Service.
type Option func(*Service)

// WithCaptcha enables captcha verification.
func WithCaptcha(v CaptchaVerifier) Option {
	return func(s *Service) { s.captcha = v }
}

// WithCountryLookup enables country enrichment of submission logs.
func WithCountryLookup(g CountryLookup) Option {
	return func(s *Service) { s.geo = g }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a submission service. ownerEmail is the fallback
// channel offered when delivery is not configured.
func NewService(d Deliverer, ownerEmail string, opts ...Option) *Service {
	s := &Service{
		deliverer:  d,
		ownerEmail: ownerEmail,
		logger:     slog.Default(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deliverer returns the active delivery strategy.
func (s *Service) Deliverer() Deliverer {
	return s.deliverer
}

// ConfigErrorMessage is shown when delivery credentials are missing.
func (s *Service) ConfigErrorMessage() string {
	return "Email service is not configured. Please contact me directly at " + s.ownerEmail
}

// FailureMessage builds the banner text for a failed delivery.
func FailureMessage(detail string) string {
	msg := "Failed to send message. "
	if detail != "" {
		msg += "Error: " + detail + ". "
	}
	return msg + "Please try again or contact me directly."
}

// Submit validates in and, when valid, makes exactly one delivery attempt.
// Invalid input never reaches the deliverer. The delivered text is the
// normalized input that passed validation; escaping happens at render time.
func (s *Service) Submit(ctx context.Context, in Input, meta Meta) Result {
	normalized, errs := Validate(in)
	if errs != nil {
		return Result{Status: StatusInvalid, Errors: errs, Input: normalized}
	}

	if s.captcha != nil {
		if err := s.captcha.Verify(ctx, meta.CaptchaToken, meta.RemoteIP); err != nil {
			msg := MsgCaptchaFailed
			if errors.Is(err, ErrCaptchaMissing) {
				msg = MsgCaptchaMissing
			}
			s.logger.WarnContext(ctx, "contact captcha rejected", "error", err, "remote_ip", meta.RemoteIP)
			return Result{Status: StatusInvalid, Errors: FieldErrors{FieldCaptcha: msg}, Input: normalized}
		}
	}

	sub := Submission{
		ID:         s.newID(),
		Input:      normalized,
		RemoteIP:   meta.RemoteIP,
		UserAgent:  meta.UserAgent,
		ReceivedAt: s.now(),
	}

	attrs := s.logAttrs(sub)
	err := s.deliverer.Deliver(ctx, sub)

	var cfgErr *ConfigError
	var delErr *DeliveryError
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "contact message delivered", attrs...)
		return Result{Status: StatusSent, Message: MsgSent, SubmissionID: sub.ID, Input: normalized}

	case errors.As(err, &cfgErr):
		s.logger.ErrorContext(ctx, "contact delivery not configured",
			append(attrs, "missing", cfgErr.Missing)...)
		return Result{Status: StatusConfigError, Message: s.ConfigErrorMessage(), SubmissionID: sub.ID, Input: normalized}

	case errors.As(err, &delErr):
		s.logger.WarnContext(ctx, "contact delivery failed", append(attrs, "error", err)...)
		return Result{Status: StatusFailed, Message: FailureMessage(delErr.Detail), SubmissionID: sub.ID, Input: normalized}

	default:
		s.logger.WarnContext(ctx, "contact delivery failed", append(attrs, "error", err)...)
		return Result{Status: StatusFailed, Message: FailureMessage(err.Error()), SubmissionID: sub.ID, Input: normalized}
	}
}

func (s *Service) logAttrs(sub Submission) []any {
	attrs := []any{
		"submission_id", sub.ID,
		"strategy", s.deliverer.Name(),
	}
	if sub.UserAgent != "" {
		ua := useragent.Parse(sub.UserAgent)
		attrs = append(attrs, "browser", ua.Name, "os", ua.OS, "bot", ua.Bot)
	}
	if s.geo != nil && sub.RemoteIP != "" {
		if country := s.geo.LookupCountry(sub.RemoteIP); country != "" {
			attrs = append(attrs, "country", country)
		}
	}
	return attrs
}
