// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"time"
)

// SecurityTxt holds the fields of a security.txt file (RFC 9116).
type SecurityTxt struct {
	// Contact is required. Typically "mailto:" plus the owner address.
	Contact []string

	// Expires is required. Zero means one year after Now.
	Expires time.Time

	// Canonical is the public URL of the file itself.
	Canonical string

	PreferredLanguages string
}

// Build generates the security.txt content. now anchors the default expiry.
func (s SecurityTxt) Build(now time.Time) string {
	var sb strings.Builder

	for _, contact := range s.Contact {
		if contact == "" {
			continue
		}
		if strings.Contains(contact, "@") && !strings.Contains(contact, ":") {
			contact = "mailto:" + contact
		}
		writeField(&sb, "Contact", contact)
	}

	expires := s.Expires
	if expires.IsZero() {
		expires = now.AddDate(1, 0, 0)
	}
	writeField(&sb, "Expires", expires.UTC().Format(time.RFC3339))

	if s.PreferredLanguages != "" {
		writeField(&sb, "Preferred-Languages", s.PreferredLanguages)
	}
	if s.Canonical != "" {
		writeField(&sb, "Canonical", s.Canonical)
	}

	return sb.String()
}

func writeField(sb *strings.Builder, name, value string) {
	sb.WriteString(name)
	sb.WriteString(": ")
	sb.WriteString(value)
	sb.WriteString("\n")
}
