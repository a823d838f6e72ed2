// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog holds the portfolio's static content: owner profile,
// projects, skills, experience and the derived views used by pages.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/olegiv/folio/internal/util"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile reads and validates a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Load decodes a YAML catalog, derives missing slugs and validates it.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	for i := range c.Projects {
		if c.Projects[i].Slug == "" {
			c.Projects[i].Slug = util.Slugify(c.Projects[i].Title)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the catalog invariants and reports every violation found.
func (c *Catalog) Validate() error {
	var errs []error

	ids := make(map[int]bool, len(c.Projects))
	slugs := make(map[string]bool, len(c.Projects))
	for _, p := range c.Projects {
		if ids[p.ID] {
			errs = append(errs, fmt.Errorf("project %d: duplicate id", p.ID))
		}
		ids[p.ID] = true
		if p.Title == "" {
			errs = append(errs, fmt.Errorf("project %d: title is required", p.ID))
		}
		if !util.IsValidSlug(p.Slug) {
			errs = append(errs, fmt.Errorf("project %d: invalid slug %q", p.ID, p.Slug))
		} else if slugs[p.Slug] {
			errs = append(errs, fmt.Errorf("project %d: duplicate slug %q", p.ID, p.Slug))
		}
		slugs[p.Slug] = true
		if len(p.Tech) == 0 {
			errs = append(errs, fmt.Errorf("project %d: tech list must not be empty", p.ID))
		}
	}

	for _, s := range c.Skills {
		if s.Level < 0 || s.Level > 100 {
			errs = append(errs, fmt.Errorf("skill %q: level %d out of range [0,100]", s.Name, s.Level))
		}
		if !s.Category.Valid() {
			errs = append(errs, fmt.Errorf("skill %q: unknown category %q", s.Name, s.Category))
		}
	}

	expIDs := make(map[int]bool, len(c.Experiences))
	for _, e := range c.Experiences {
		if expIDs[e.ID] {
			errs = append(errs, fmt.Errorf("experience %d: duplicate id", e.ID))
		}
		expIDs[e.ID] = true
		if !e.Current && e.EndDate == "" {
			errs = append(errs, fmt.Errorf("experience %d: end date required when not current", e.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	return nil
}

// ProjectBySlug returns the project with the given slug.
func (c *Catalog) ProjectBySlug(slug string) (Project, bool) {
	for _, p := range c.Projects {
		if p.Slug == slug {
			return p, true
		}
	}
	return Project{}, false
}

// ProjectByID returns the project with the given id.
func (c *Catalog) ProjectByID(id int) (Project, bool) {
	for _, p := range c.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// FeaturedProjects returns featured projects in catalog order.
func (c *Catalog) FeaturedProjects() []Project {
	var out []Project
	for _, p := range c.Projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Tags returns the distinct technology tags in first-seen order.
func (c *Catalog) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, p := range c.Projects {
		for _, t := range p.Tech {
			key := foldTag(t)
			if seen[key] {
				continue
			}
			seen[key] = true
			tags = append(tags, t)
		}
	}
	return tags
}

// SkillsByCategory groups skills by category, preserving catalog order within a group.
func (c *Catalog) SkillsByCategory() map[SkillCategory][]Skill {
	out := make(map[SkillCategory][]Skill)
	for _, s := range c.Skills {
		out[s.Category] = append(out[s.Category], s)
	}
	return out
}

// FormatDateRange renders an experience period.
// A current position always ends in "Present" regardless of end.
func FormatDateRange(start, end string, current bool) string {
	if current {
		return start + " - Present"
	}
	return start + " - " + end
}
