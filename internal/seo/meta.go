// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo provides SEO utilities for building meta tags and structured data.
package seo

import (
	"encoding/json"
	"html/template"
	"strings"
)

// Meta holds all SEO meta tag data for a page.
type Meta struct {
	Title         string // Page title (for <title> tag)
	Description   string // Meta description
	Keywords      string // Meta keywords
	Canonical     string // Canonical URL
	OGTitle       string // Open Graph title
	OGDescription string // Open Graph description
	OGImage       string // Open Graph image URL (absolute)
	OGType        string // Open Graph type (website, profile, article)
	OGSiteName    string // Open Graph site name
	OGURL         string // Open Graph URL
	Robots        string // Robots directive (index,follow / noindex,nofollow)
	TwitterCard   string // Twitter card type
}

// PageData contains page information for building meta tags.
type PageData struct {
	Title       string
	Description string // Plain text or HTML; tags are stripped
	Path        string // Site-relative path such as "/projects/defi-dashboard"
	Keywords    []string
	Image       string
	Type        string // Open Graph type, defaults to "article"
	NoIndex     bool
}

// SiteConfig contains site-wide settings for SEO.
type SiteConfig struct {
	SiteName        string
	SiteURL         string
	SiteDescription string
	DefaultOGImage  string
}

// BuildMeta creates a Meta struct from page and site data with proper fallbacks.
// A nil page yields the homepage meta.
func BuildMeta(page *PageData, site *SiteConfig) *Meta {
	meta := &Meta{
		OGType:      "website",
		TwitterCard: "summary_large_image",
		OGSiteName:  site.SiteName,
	}

	if page == nil {
		meta.Title = site.SiteName
		meta.OGTitle = site.SiteName
		meta.Description = site.SiteDescription
		meta.OGDescription = site.SiteDescription
		meta.Canonical = site.SiteURL
		meta.OGURL = site.SiteURL
		meta.Robots = "index,follow"
		meta.OGImage = makeAbsoluteURL(site.DefaultOGImage, site.SiteURL)
		return meta
	}

	meta.OGType = "article"
	if page.Type != "" {
		meta.OGType = page.Type
	}

	meta.Title = site.SiteName
	if page.Title != "" {
		meta.Title = page.Title + " | " + site.SiteName
	}
	meta.OGTitle = page.Title

	if page.Description != "" {
		meta.Description = truncateText(stripHTML(page.Description), 160)
	} else {
		meta.Description = site.SiteDescription
	}
	meta.OGDescription = meta.Description

	meta.Keywords = strings.Join(page.Keywords, ", ")

	if page.Image != "" {
		meta.OGImage = makeAbsoluteURL(page.Image, site.SiteURL)
	} else {
		meta.OGImage = makeAbsoluteURL(site.DefaultOGImage, site.SiteURL)
	}

	meta.Canonical = strings.TrimSuffix(site.SiteURL, "/") + page.Path
	meta.OGURL = meta.Canonical
	meta.Robots = buildRobotsDirective(page.NoIndex, false)

	return meta
}

// buildRobotsDirective creates the robots meta content from noindex/nofollow flags.
func buildRobotsDirective(noIndex, noFollow bool) string {
	var parts []string

	if noIndex {
		parts = append(parts, "noindex")
	} else {
		parts = append(parts, "index")
	}

	if noFollow {
		parts = append(parts, "nofollow")
	} else {
		parts = append(parts, "follow")
	}

	return strings.Join(parts, ",")
}

// PersonSchema represents JSON-LD Person structured data.
type PersonSchema struct {
	Context    string   `json:"@context,omitempty"`
	Type       string   `json:"@type"`
	Name       string   `json:"name"`
	JobTitle   string   `json:"jobTitle,omitempty"`
	Email      string   `json:"email,omitempty"`
	URL        string   `json:"url,omitempty"`
	Address    string   `json:"address,omitempty"`
	KnowsAbout []string `json:"knowsAbout,omitempty"`
	SameAs     []string `json:"sameAs,omitempty"`
}

// CreativeWorkSchema represents JSON-LD SoftwareSourceCode data for a project.
type CreativeWorkSchema struct {
	Context             string        `json:"@context"`
	Type                string        `json:"@type"`
	Name                string        `json:"name"`
	Description         string        `json:"description,omitempty"`
	URL                 string        `json:"url,omitempty"`
	Image               string        `json:"image,omitempty"`
	CodeRepository      string        `json:"codeRepository,omitempty"`
	ProgrammingLanguage []string      `json:"programmingLanguage,omitempty"`
	Author              *PersonSchema `json:"author,omitempty"`
}

// BreadcrumbSchema represents JSON-LD BreadcrumbList structured data.
type BreadcrumbSchema struct {
	Context  string           `json:"@context"`
	Type     string           `json:"@type"`
	ItemList []BreadcrumbItem `json:"itemListElement"`
}

// BreadcrumbItem represents a single breadcrumb item.
type BreadcrumbItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

// Person describes the site owner for structured data.
type Person struct {
	Name     string
	JobTitle string
	Email    string
	Location string
	Skills   []string
	Profiles []string
}

// BuildPersonSchema creates JSON-LD Person structured data for the homepage.
func BuildPersonSchema(p Person, site *SiteConfig) template.JS {
	if p.Name == "" {
		return ""
	}
	return marshalJSONLD(PersonSchema{
		Context:    "https://schema.org",
		Type:       "Person",
		Name:       p.Name,
		JobTitle:   p.JobTitle,
		Email:      p.Email,
		URL:        site.SiteURL,
		Address:    p.Location,
		KnowsAbout: p.Skills,
		SameAs:     p.Profiles,
	})
}

// Work describes a project for structured data.
type Work struct {
	Title       string
	Description string
	Path        string
	Image       string
	Repository  string
	Tech        []string
	AuthorName  string
}

// BuildWorkSchema creates JSON-LD SoftwareSourceCode structured data for a project page.
func BuildWorkSchema(w Work, site *SiteConfig) template.JS {
	if w.Title == "" {
		return ""
	}
	schema := CreativeWorkSchema{
		Context:             "https://schema.org",
		Type:                "SoftwareSourceCode",
		Name:                w.Title,
		Description:         truncateText(stripHTML(w.Description), 300),
		URL:                 strings.TrimSuffix(site.SiteURL, "/") + w.Path,
		Image:               makeAbsoluteURL(w.Image, site.SiteURL),
		CodeRepository:      w.Repository,
		ProgrammingLanguage: w.Tech,
	}
	if w.AuthorName != "" {
		schema.Author = &PersonSchema{Type: "Person", Name: w.AuthorName}
	}
	return marshalJSONLD(schema)
}

// Crumb is a single breadcrumb link. An empty Path marks the current page.
type Crumb struct {
	Name string
	Path string
}

// BuildBreadcrumbSchema creates JSON-LD BreadcrumbList structured data.
func BuildBreadcrumbSchema(crumbs []Crumb, site *SiteConfig) template.JS {
	if len(crumbs) == 0 {
		return ""
	}
	list := BreadcrumbSchema{
		Context:  "https://schema.org",
		Type:     "BreadcrumbList",
		ItemList: make([]BreadcrumbItem, 0, len(crumbs)),
	}
	for i, c := range crumbs {
		item := BreadcrumbItem{Type: "ListItem", Position: i + 1, Name: c.Name}
		if c.Path != "" {
			item.Item = strings.TrimSuffix(site.SiteURL, "/") + c.Path
		}
		list.ItemList = append(list.ItemList, item)
	}
	return marshalJSONLD(list)
}

// marshalJSONLD marshals structured data to JSON-LD script tag content.
func marshalJSONLD(v any) template.JS {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return template.JS(data)
}

// Helper functions

// stripHTML removes HTML tags from a string.
func stripHTML(html string) string {
	var result strings.Builder
	inTag := false
	for _, r := range html {
		if r == '<' {
			inTag = true
			continue
		}
		if r == '>' {
			inTag = false
			result.WriteRune(' ') // Replace tags with space
			continue
		}
		if !inTag {
			result.WriteRune(r)
		}
	}
	// Collapse whitespace
	return strings.Join(strings.Fields(result.String()), " ")
}

// truncateText truncates text to maxLen runes at a word boundary.
func truncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	truncated := string(runes[:maxLen])
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > len(truncated)/2 {
		truncated = truncated[:lastSpace]
	}

	return strings.TrimSpace(truncated) + "..."
}

// makeAbsoluteURL ensures a URL is absolute by prepending site URL if needed.
func makeAbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	siteURL = strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}
