// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// blockedHostnames lists hostnames that must never be accessed.
var blockedHostnames = []string{
	"metadata.google.internal",
	"metadata.goog",
}

// ValidateOutboundURL checks that a configured URL is safe for server-side
// HTTP requests. It blocks non-HTTP schemes, localhost, cloud metadata
// hostnames and literal private IPs. Hostnames are not resolved.
func ValidateOutboundURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("URL is required")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("only http and https URLs are allowed")
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	lower := strings.ToLower(hostname)
	if lower == "localhost" || strings.HasSuffix(lower, ".localhost") {
		return fmt.Errorf("localhost URLs are not allowed")
	}
	for _, blocked := range blockedHostnames {
		if lower == blocked {
			return fmt.Errorf("cloud metadata endpoints are not allowed")
		}
	}

	if ip := net.ParseIP(hostname); ip != nil && IsPrivateIP(ip) {
		return fmt.Errorf("URL points to a private/reserved IP address (%s)", hostname)
	}

	return nil
}
