// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"slices"
	"strings"
)

// FragmentPattern matches project overlay fragments (?partial=1), which
// repeat the content of the project detail pages.
const FragmentPattern = "/*?partial="

// Robots is the crawl policy of the portfolio. Content pages stay open;
// Closed lists paths that only accept form posts or report process state.
type Robots struct {
	SiteURL string
	Private bool // Development and previews: nothing is crawled
	Closed  []string
}

// String renders robots.txt. Closed paths are deduplicated and sorted so
// the output is stable across route registration order.
func (r Robots) String() string {
	if r.Private {
		return "User-agent: *\nDisallow: /\n"
	}

	closed := append(slices.Clone(r.Closed), FragmentPattern)
	slices.Sort(closed)
	closed = slices.Compact(closed)

	var sb strings.Builder
	sb.WriteString("User-agent: *\n")
	for _, p := range closed {
		if p == "" || p == "/" {
			continue
		}
		sb.WriteString("Disallow: " + p + "\n")
	}
	sb.WriteString("Allow: /\n")

	if base := strings.TrimSuffix(r.SiteURL, "/"); base != "" {
		sb.WriteString("\nSitemap: " + base + "/sitemap.xml\n")
	}
	return sb.String()
}
