// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"html/template"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"hello world", 6, "hello..."},
		{"héllo wörld", 5, "héllo..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestBaseFuncs(t *testing.T) {
	funcs := baseFuncs()

	width := funcs["widthPercent"].(func(int) template.CSS)
	for in, want := range map[int]template.CSS{-5: "width: 0%", 55: "width: 55%", 140: "width: 100%"} {
		if got := width(in); got != want {
			t.Errorf("widthPercent(%d) = %q, want %q", in, got, want)
		}
	}

	isActive := funcs["isActive"].(func(string, string) bool)
	tests := []struct {
		current, link string
		want          bool
	}{
		{"/", "/", true},
		{"/about", "/", false},
		{"/projects", "/projects", true},
		{"/projects/defi", "/projects", true},
		{"/projectsx", "/projects", false},
	}
	for _, tt := range tests {
		if got := isActive(tt.current, tt.link); got != tt.want {
			t.Errorf("isActive(%q, %q) = %v, want %v", tt.current, tt.link, got, tt.want)
		}
	}

	dateRange := funcs["dateRange"].(func(string, string, bool) string)
	if got := dateRange("2022", "2024", true); got != "2022 - Present" {
		t.Errorf("dateRange() = %q", got)
	}
}
