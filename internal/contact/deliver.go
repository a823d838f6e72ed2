// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/folio/internal/relay"
)

var (
	// ErrMissingFields is returned when a required field is absent at delivery time.
	ErrMissingFields = errors.New("all fields are required")
	// ErrSubmitInProgress is returned when a form already has a submission in flight.
	ErrSubmitInProgress = errors.New("submission already in progress")
)

// ConfigError reports missing relay credentials. It is raised before any network call.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "email relay is not configured: missing " + strings.Join(e.Missing, ", ")
}

// DeliveryError wraps a failed delivery attempt. Detail is the provider's
// own explanation when one was returned.
type DeliveryError struct {
	Detail string
	Err    error
}

func (e *DeliveryError) Error() string {
	if e.Detail == "" {
		return "delivery failed"
	}
	return "delivery failed: " + e.Detail
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Submission is a validated message ready for delivery.
type Submission struct {
	ID         string
	Input      Input
	RemoteIP   string
	UserAgent  string
	ReceivedAt time.Time
}

// Deliverer sends a submission. Implementations make exactly one attempt.
type Deliverer interface {
	Name() string
	Deliver(ctx context.Context, s Submission) error
}

// EndpointDeliverer is the server-side stub strategy: it re-checks that the
// required fields are present and logs the submission. Nothing is stored or forwarded.
type EndpointDeliverer struct {
	logger *slog.Logger
}

// NewEndpointDeliverer creates the stub strategy.
func NewEndpointDeliverer(logger *slog.Logger) *EndpointDeliverer {
	if logger == nil {
		logger = slog.Default()
	}
	return &EndpointDeliverer{logger: logger}
}

// Name implements Deliverer.
func (d *EndpointDeliverer) Name() string { return "endpoint" }

// Deliver implements Deliverer.
func (d *EndpointDeliverer) Deliver(ctx context.Context, s Submission) error {
	if !RequiredPresent(s.Input) {
		return ErrMissingFields
	}
	d.logger.InfoContext(ctx, "contact form submission",
		"submission_id", s.ID,
		"name", s.Input.Name,
		"email", s.Input.Email,
		"subject", s.Input.Subject,
		"message_length", len(s.Input.Message),
	)
	return nil
}

// Relay is the subset of relay.Client used for delivery.
type Relay interface {
	Config() relay.Config
	Send(ctx context.Context, params map[string]string) error
}

// RelayDeliverer delivers through the hosted email relay.
type RelayDeliverer struct {
	client Relay
}

// NewRelayDeliverer creates the relay strategy.
func NewRelayDeliverer(client Relay) *RelayDeliverer {
	return &RelayDeliverer{client: client}
}

// Name implements Deliverer.
func (d *RelayDeliverer) Name() string { return "relay" }

// Deliver implements Deliverer.
func (d *RelayDeliverer) Deliver(ctx context.Context, s Submission) error {
	if missing := d.client.Config().Missing(); len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}

	subject := s.Input.Subject
	if subject == "" {
		subject = "New Contact Form Message"
	}
	params := map[string]string{
		"from_name":  s.Input.Name,
		"from_email": s.Input.Email,
		"subject":    subject,
		"message":    s.Input.Message,
	}
	if s.Input.Phone != "" {
		params["phone"] = s.Input.Phone
	}

	err := d.client.Send(ctx, params)
	if err == nil {
		return nil
	}

	if errors.Is(err, relay.ErrNotConfigured) {
		return &ConfigError{Missing: d.client.Config().Missing()}
	}

	var relayErr *relay.Error
	if errors.As(err, &relayErr) {
		return &DeliveryError{Detail: relayErr.Error(), Err: err}
	}
	return &DeliveryError{Detail: err.Error(), Err: fmt.Errorf("sending via relay: %w", err)}
}
