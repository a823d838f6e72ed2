// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/folio/internal/relay"
	"github.com/olegiv/folio/internal/util"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Contact delivery strategies.
const (
	DeliveryRelay    = "relay"
	DeliveryEndpoint = "endpoint"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	SessionSecret string `env:"FOLIO_SESSION_SECRET,required"`
	SessionDBPath string `env:"FOLIO_SESSION_DB_PATH"` // Optional SQLite session store
	ServerHost    string `env:"FOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"FOLIO_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"FOLIO_ENV" envDefault:"development"`
	LogLevel      string `env:"FOLIO_LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"FOLIO_LOG_FORMAT" envDefault:"text"`
	SiteURL       string `env:"FOLIO_SITE_URL" envDefault:"http://localhost:8080"`
	CatalogPath   string `env:"FOLIO_CATALOG_PATH"` // Optional YAML catalog overriding the embedded one

	// Contact form
	ContactDelivery string  `env:"FOLIO_CONTACT_DELIVERY" envDefault:"relay"`
	OwnerEmail      string  `env:"FOLIO_OWNER_EMAIL" envDefault:"ali@alikiani.co"`
	ContactRate     float64 `env:"FOLIO_CONTACT_RATE" envDefault:"0.2"` // Requests per second per IP
	ContactBurst    int     `env:"FOLIO_CONTACT_BURST" envDefault:"3"`

	// Third-party email relay (EmailJS)
	EmailJSServiceID  string `env:"FOLIO_EMAILJS_SERVICE_ID"`
	EmailJSTemplateID string `env:"FOLIO_EMAILJS_TEMPLATE_ID"`
	EmailJSPublicKey  string `env:"FOLIO_EMAILJS_PUBLIC_KEY"`
	EmailJSPrivateKey string `env:"FOLIO_EMAILJS_PRIVATE_KEY"`
	EmailJSEndpoint   string `env:"FOLIO_EMAILJS_ENDPOINT" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`

	// Analytics
	AnalyticsID      string `env:"FOLIO_ANALYTICS_ID"`
	AnalyticsEnabled bool   `env:"FOLIO_ANALYTICS_ENABLED" envDefault:"false"`

	// Cache configuration
	RedisURL     string `env:"FOLIO_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"FOLIO_CACHE_PREFIX" envDefault:"folio:"`  // Redis key prefix
	CacheTTL     int    `env:"FOLIO_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"FOLIO_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// hCaptcha configuration
	HCaptchaSiteKey   string `env:"FOLIO_HCAPTCHA_SITE_KEY"`
	HCaptchaSecretKey string `env:"FOLIO_HCAPTCHA_SECRET_KEY"`

	// GeoIP configuration
	GeoIPDBPath string `env:"FOLIO_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// UseSQLiteSessions returns true if sessions should be persisted to SQLite.
func (c Config) UseSQLiteSessions() bool {
	return c.SessionDBPath != ""
}

// HCaptchaEnabled returns true if hCaptcha is configured.
func (c Config) HCaptchaEnabled() bool {
	return c.HCaptchaSiteKey != "" && c.HCaptchaSecretKey != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// AnalyticsActive reports whether the analytics snippet should be rendered.
func (c Config) AnalyticsActive() bool {
	return c.AnalyticsEnabled && c.AnalyticsID != ""
}

// CacheTTLDuration returns the configured cache TTL.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// RelayConfig returns the email relay settings.
func (c Config) RelayConfig() relay.Config {
	return relay.Config{
		ServiceID:  c.EmailJSServiceID,
		TemplateID: c.EmailJSTemplateID,
		PublicKey:  c.EmailJSPublicKey,
		PrivateKey: c.EmailJSPrivateKey,
		Endpoint:   c.EmailJSEndpoint,
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
// The CSRF key derivation needs 32 bytes.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("FOLIO_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, errors.New("FOLIO_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("FOLIO_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	switch cfg.ContactDelivery {
	case DeliveryRelay, DeliveryEndpoint:
	default:
		return nil, fmt.Errorf("FOLIO_CONTACT_DELIVERY must be %q or %q, got %q",
			DeliveryRelay, DeliveryEndpoint, cfg.ContactDelivery)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("FOLIO_LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.ContactRate <= 0 || cfg.ContactBurst <= 0 {
		return nil, errors.New("FOLIO_CONTACT_RATE and FOLIO_CONTACT_BURST must be positive")
	}

	if !cfg.IsDevelopment() {
		if err := util.ValidateOutboundURL(cfg.EmailJSEndpoint); err != nil {
			return nil, fmt.Errorf("FOLIO_EMAILJS_ENDPOINT: %w", err)
		}
	}

	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
