// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder builds sitemap XML for the site's pages and projects.
type SitemapBuilder struct {
	siteURL string
	lastMod time.Time
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder. A non-zero lastMod is
// stamped on every entry; the catalog is versioned as a whole.
func NewSitemapBuilder(siteURL string, lastMod time.Time) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		lastMod: lastMod,
		urls:    make([]SitemapURL, 0),
	}
}

func (b *SitemapBuilder) add(path string, freq ChangeFreq, priority string) {
	u := SitemapURL{
		Loc:        b.siteURL + path,
		ChangeFreq: freq,
		Priority:   priority,
	}
	if !b.lastMod.IsZero() {
		u.LastMod = b.lastMod.UTC().Format(time.RFC3339)
	}
	b.urls = append(b.urls, u)
}

// AddHomepage adds the homepage to the sitemap.
func (b *SitemapBuilder) AddHomepage() {
	b.add("/", ChangeFreqWeekly, "1.0")
}

// AddPage adds a top-level page such as /about.
func (b *SitemapBuilder) AddPage(path string) {
	b.add(path, ChangeFreqMonthly, "0.8")
}

// AddProject adds a project detail page.
func (b *SitemapBuilder) AddProject(slug string) {
	b.add("/projects/"+slug, ChangeFreqMonthly, "0.6")
}

// AddProjects adds multiple project pages to the sitemap.
func (b *SitemapBuilder) AddProjects(slugs []string) {
	for _, s := range slugs {
		b.AddProject(s)
	}
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap is a convenience function to generate the full sitemap.
func GenerateSitemap(siteURL string, pages, projectSlugs []string, lastMod time.Time) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL, lastMod)
	builder.AddHomepage()
	for _, p := range pages {
		builder.AddPage(p)
	}
	builder.AddProjects(projectSlugs)
	return builder.Build()
}
