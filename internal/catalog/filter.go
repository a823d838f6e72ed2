// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilterAll is the filter value that selects every project.
const FilterAll = "all"

// foldTag normalizes a tag for case-insensitive comparison.
// A fresh Caser is used per call since cases.Caser is not safe for concurrent use.
func foldTag(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// NormalizeFilter folds a filter value for comparison. Blank selects "all".
func NormalizeFilter(filter string) string {
	if f := foldTag(filter); f != "" {
		return f
	}
	return FilterAll
}

// FilterProjects returns the projects matching filter, in original order.
// "all" (any case) and the empty string select everything; any other value keeps
// projects having a tech tag equal to it ignoring case. A positive limit
// truncates the result. The returned slice never aliases projects.
func FilterProjects(projects []Project, filter string, limit int) []Project {
	out := make([]Project, 0, len(projects))

	want := NormalizeFilter(filter)
	if want == FilterAll {
		out = append(out, projects...)
	} else {
		for _, p := range projects {
			if hasTag(p, want) {
				out = append(out, p)
			}
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func hasTag(p Project, folded string) bool {
	for _, t := range p.Tech {
		if foldTag(t) == folded {
			return true
		}
	}
	return false
}
