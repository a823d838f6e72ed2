// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"strings"
	"testing"
)

func testSite() *SiteConfig {
	return &SiteConfig{
		SiteName:        "Ali Kiani",
		SiteURL:         "https://example.com",
		SiteDescription: "Senior frontend developer",
		DefaultOGImage:  "/static/og.png",
	}
}

func TestBuildMetaHomepage(t *testing.T) {
	meta := BuildMeta(nil, testSite())

	if meta.Title != "Ali Kiani" {
		t.Errorf("Title = %q, want %q", meta.Title, "Ali Kiani")
	}
	if meta.Description != "Senior frontend developer" {
		t.Errorf("Description = %q", meta.Description)
	}
	if meta.OGType != "website" {
		t.Errorf("OGType = %q, want website", meta.OGType)
	}
	if meta.Canonical != "https://example.com" || meta.OGURL != meta.Canonical {
		t.Errorf("Canonical = %q, OGURL = %q", meta.Canonical, meta.OGURL)
	}
	if meta.Robots != "index,follow" {
		t.Errorf("Robots = %q, want index,follow", meta.Robots)
	}
	if meta.OGImage != "https://example.com/static/og.png" {
		t.Errorf("OGImage = %q", meta.OGImage)
	}
	if meta.TwitterCard != "summary_large_image" {
		t.Errorf("TwitterCard = %q", meta.TwitterCard)
	}
}

func TestBuildMetaPage(t *testing.T) {
	meta := BuildMeta(&PageData{
		Title:       "DeFi Dashboard",
		Description: "<p>A <strong>real-time</strong> dashboard</p>",
		Path:        "/projects/defi-dashboard",
		Keywords:    []string{"React", "Web3"},
		Image:       "https://cdn.example.com/defi.png",
	}, testSite())

	if meta.Title != "DeFi Dashboard | Ali Kiani" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.OGTitle != "DeFi Dashboard" {
		t.Errorf("OGTitle = %q", meta.OGTitle)
	}
	if meta.Description != "A real-time dashboard" {
		t.Errorf("Description = %q", meta.Description)
	}
	if meta.Keywords != "React, Web3" {
		t.Errorf("Keywords = %q", meta.Keywords)
	}
	if meta.OGImage != "https://cdn.example.com/defi.png" {
		t.Errorf("OGImage = %q", meta.OGImage)
	}
	if meta.Canonical != "https://example.com/projects/defi-dashboard" {
		t.Errorf("Canonical = %q", meta.Canonical)
	}
	if meta.OGType != "article" {
		t.Errorf("OGType = %q, want article", meta.OGType)
	}
}

func TestBuildMetaPageFallbacks(t *testing.T) {
	meta := BuildMeta(&PageData{Path: "/404", Type: "website", NoIndex: true}, testSite())

	if meta.Title != "Ali Kiani" {
		t.Errorf("Title = %q, want site name", meta.Title)
	}
	if meta.Description != "Senior frontend developer" {
		t.Errorf("Description = %q, want site description", meta.Description)
	}
	if meta.OGImage != "https://example.com/static/og.png" {
		t.Errorf("OGImage = %q, want default image", meta.OGImage)
	}
	if meta.Robots != "noindex,follow" {
		t.Errorf("Robots = %q, want noindex,follow", meta.Robots)
	}
	if meta.OGType != "website" {
		t.Errorf("OGType = %q, want website", meta.OGType)
	}
}

func TestBuildPersonSchema(t *testing.T) {
	if got := BuildPersonSchema(Person{}, testSite()); got != "" {
		t.Errorf("empty person = %q, want empty", got)
	}

	js := BuildPersonSchema(Person{
		Name:     "Ali Kiani",
		JobTitle: "Senior Frontend Developer",
		Profiles: []string{"https://github.com/alikiani"},
	}, testSite())

	var got map[string]any
	if err := json.Unmarshal([]byte(js), &got); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	if got["@type"] != "Person" || got["name"] != "Ali Kiani" {
		t.Errorf("schema = %v", got)
	}
	if got["url"] != "https://example.com" {
		t.Errorf("url = %v", got["url"])
	}
	if _, ok := got["email"]; ok {
		t.Error("empty email should be omitted")
	}
}

func TestBuildWorkSchema(t *testing.T) {
	js := BuildWorkSchema(Work{
		Title:       "NFT Marketplace",
		Description: "Full-stack marketplace",
		Path:        "/projects/nft-marketplace",
		Image:       "/static/nft.png",
		Repository:  "https://github.com/x/nft",
		Tech:        []string{"Next.js", "Solidity"},
		AuthorName:  "Ali Kiani",
	}, testSite())

	var got CreativeWorkSchema
	if err := json.Unmarshal([]byte(js), &got); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	if got.Type != "SoftwareSourceCode" || got.Name != "NFT Marketplace" {
		t.Errorf("schema = %+v", got)
	}
	if got.URL != "https://example.com/projects/nft-marketplace" {
		t.Errorf("URL = %q", got.URL)
	}
	if got.Image != "https://example.com/static/nft.png" {
		t.Errorf("Image = %q", got.Image)
	}
	if got.Author == nil || got.Author.Name != "Ali Kiani" {
		t.Errorf("Author = %+v", got.Author)
	}
}

func TestBuildBreadcrumbSchema(t *testing.T) {
	if got := BuildBreadcrumbSchema(nil, testSite()); got != "" {
		t.Errorf("nil crumbs = %q, want empty", got)
	}

	js := BuildBreadcrumbSchema([]Crumb{{Name: "Home", Path: "/"}, {Name: "Projects"}}, testSite())

	var got BreadcrumbSchema
	if err := json.Unmarshal([]byte(js), &got); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	if len(got.ItemList) != 2 {
		t.Fatalf("items = %d, want 2", len(got.ItemList))
	}
	if got.ItemList[0].Item != "https://example.com/" || got.ItemList[0].Position != 1 {
		t.Errorf("first item = %+v", got.ItemList[0])
	}
	if got.ItemList[1].Item != "" || got.ItemList[1].Position != 2 {
		t.Errorf("current item = %+v", got.ItemList[1])
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   string
	}{
		{"short", "Hello world", 20, "Hello world"},
		{"exact", "Hello", 5, "Hello"},
		{"word boundary", "Hello world this is a test", 15, "Hello world..."},
		{"runes", strings.Repeat("é", 10), 4, "éééé..."},
		{"trim", "  Hello  ", 20, "Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateText(tt.text, tt.maxLen); got != tt.want {
				t.Errorf("truncateText(%q, %d) = %q, want %q", tt.text, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestStripHTML(t *testing.T) {
	if got := stripHTML("<p>Hello <b>world</b></p>"); got != "Hello world" {
		t.Errorf("stripHTML() = %q", got)
	}
}

func TestMakeAbsoluteURL(t *testing.T) {
	tests := []struct {
		url, site, want string
	}{
		{"", "https://example.com", ""},
		{"https://cdn.example.com/a.png", "https://example.com", "https://cdn.example.com/a.png"},
		{"/a.png", "https://example.com/", "https://example.com/a.png"},
		{"a.png", "https://example.com", "https://example.com/a.png"},
	}
	for _, tt := range tests {
		if got := makeAbsoluteURL(tt.url, tt.site); got != tt.want {
			t.Errorf("makeAbsoluteURL(%q, %q) = %q, want %q", tt.url, tt.site, got, tt.want)
		}
	}
}
