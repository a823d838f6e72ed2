// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import "testing"

func TestRobots_Public(t *testing.T) {
	got := Robots{
		SiteURL: "https://alikiani.co/",
		Closed:  []string{"/theme", "/api/", "/health", "/api/", "/", ""},
	}.String()

	want := "User-agent: *\n" +
		"Disallow: /*?partial=\n" +
		"Disallow: /api/\n" +
		"Disallow: /health\n" +
		"Disallow: /theme\n" +
		"Allow: /\n" +
		"\n" +
		"Sitemap: https://alikiani.co/sitemap.xml\n"
	if got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestRobots_Private(t *testing.T) {
	got := Robots{SiteURL: "http://localhost:8080", Private: true, Closed: []string{"/api/"}}.String()
	if want := "User-agent: *\nDisallow: /\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRobots_NoSiteURL(t *testing.T) {
	got := Robots{}.String()
	if want := "User-agent: *\nDisallow: /*?partial=\nAllow: /\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRobots_DoesNotMutateClosed(t *testing.T) {
	closed := []string{"/theme", "/api/"}
	_ = Robots{Closed: closed}.String()
	if closed[0] != "/theme" || closed[1] != "/api/" || len(closed) != 2 {
		t.Errorf("Closed modified: %v", closed)
	}
}
