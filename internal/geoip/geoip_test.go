// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package geoip

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLookup_Disabled(t *testing.T) {
	g := NewLookup()
	if err := g.Init(""); err != nil {
		t.Fatalf("Init(\"\") error = %v", err)
	}
	if g.IsEnabled() {
		t.Error("empty path should disable lookups")
	}
	if err := g.Reload(); err != nil {
		t.Errorf("Reload() error = %v", err)
	}

	tests := []struct {
		ip   string
		want string
	}{
		{"127.0.0.1", Local},
		{"192.168.1.10", Local},
		{"::1", Local},
		{"8.8.8.8", ""},
		{"not-an-ip", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := g.LookupCountry(tt.ip); got != tt.want {
			t.Errorf("LookupCountry(%q) = %q, want %q", tt.ip, got, tt.want)
		}
	}
}

func TestLookup_MissingFile(t *testing.T) {
	g := NewLookup()
	err := g.Init(filepath.Join(t.TempDir(), "missing.mmdb"))
	if err == nil {
		t.Fatal("expected error for missing database")
	}
	if g.IsEnabled() {
		t.Error("lookup should stay disabled")
	}
}

func TestLookup_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.mmdb")
	if err := os.WriteFile(path, []byte("not a maxmind database"), 0o600); err != nil {
		t.Fatal(err)
	}

	g := NewLookup()
	if err := g.Init(path); err == nil {
		t.Fatal("expected error for invalid database")
	}
	if err := g.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
