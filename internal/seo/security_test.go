// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
	"time"
)

func TestSecurityTxt_Build(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fixed := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		txt      SecurityTxt
		contains []string
		excludes []string
	}{
		{
			name: "bare email gets mailto",
			txt:  SecurityTxt{Contact: []string{"owner@example.com"}, Expires: fixed},
			contains: []string{
				"Contact: mailto:owner@example.com\n",
				"Expires: 2027-01-01T00:00:00Z\n",
			},
			excludes: []string{"Canonical:", "Preferred-Languages:"},
		},
		{
			name: "url contact untouched",
			txt:  SecurityTxt{Contact: []string{"https://example.com/report", ""}, Expires: fixed},
			contains: []string{"Contact: https://example.com/report\n"},
			excludes: []string{"mailto:https"},
		},
		{
			name: "default expiry one year out",
			txt:  SecurityTxt{Contact: []string{"mailto:a@b.co"}},
			contains: []string{"Expires: 2027-03-01T12:00:00Z"},
		},
		{
			name: "optional fields",
			txt: SecurityTxt{
				Contact:            []string{"mailto:a@b.co"},
				Expires:            fixed,
				Canonical:          "https://example.com/.well-known/security.txt",
				PreferredLanguages: "en",
			},
			contains: []string{
				"Canonical: https://example.com/.well-known/security.txt\n",
				"Preferred-Languages: en\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.txt.Build(now)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Build() missing %q in:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("Build() should not contain %q in:\n%s", bad, got)
				}
			}
		})
	}
}
