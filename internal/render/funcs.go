// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/folio/internal/catalog"
	"github.com/olegiv/folio/internal/ui"
)

// baseFuncs returns the template functions every page can use.
func baseFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"dateRange": catalog.FormatDateRange,
		"truncate":  truncate,
		"join":      strings.Join,
		"lower":     strings.ToLower,
		"add": func(a, b int) int {
			return a + b
		},
		"seq": func(start, end int) []int {
			var result []int
			for i := start; i <= end; i++ {
				result = append(result, i)
			}
			return result
		},
		// icon resolves a catalog icon key through the closed registry.
		"icon": ui.IconFor,
		// widthPercent renders a skill level as a CSS width value, clamped to [0,100].
		"widthPercent": func(level int) template.CSS {
			level = max(0, min(100, level))
			return template.CSS("width: " + strconv.Itoa(level) + "%")
		},
		// isActive reports whether a nav link points at the current path.
		"isActive": func(current, link string) bool {
			if link == "/" {
				return current == "/"
			}
			return current == link || strings.HasPrefix(current, link+"/")
		},
		// markdown is replaced by the configured Markdown renderer; this
		// fallback escapes the text.
		"markdown": func(s string) template.HTML {
			return template.HTML(template.HTMLEscapeString(s))
		},
	}
}

// truncate shortens s to at most length runes, adding an ellipsis.
func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return strings.TrimSpace(string(runes[:length])) + "..."
}
