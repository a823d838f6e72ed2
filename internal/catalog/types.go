// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

// SkillCategory groups skills on the skills grid.
type SkillCategory string

// Skill categories.
const (
	CategoryFrontend       SkillCategory = "frontend"
	CategoryBackend        SkillCategory = "backend"
	CategoryTool           SkillCategory = "tool"
	CategorySpecialization SkillCategory = "specialization"
)

// Valid reports whether c is one of the known categories.
func (c SkillCategory) Valid() bool {
	switch c {
	case CategoryFrontend, CategoryBackend, CategoryTool, CategorySpecialization:
		return true
	}
	return false
}

// Project is a showcased piece of work.
type Project struct {
	ID          int      `yaml:"id" json:"id"`
	Slug        string   `yaml:"slug" json:"slug"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Tech        []string `yaml:"tech" json:"tech"`
	GitHub      string   `yaml:"github" json:"github,omitempty"`
	Live        string   `yaml:"live" json:"live,omitempty"`
	Image       string   `yaml:"image" json:"image"`
	Featured    bool     `yaml:"featured" json:"featured"`
}

// Skill is a technology with a proficiency level in [0, 100].
type Skill struct {
	Name     string        `yaml:"name" json:"name"`
	Level    int           `yaml:"level" json:"level"`
	Category SkillCategory `yaml:"category" json:"category"`
	Icon     string        `yaml:"icon" json:"icon,omitempty"`
}

// Experience is a position in the work history.
type Experience struct {
	ID          int      `yaml:"id" json:"id"`
	Company     string   `yaml:"company" json:"company"`
	Role        string   `yaml:"role" json:"role"`
	StartDate   string   `yaml:"start_date" json:"start_date"`
	EndDate     string   `yaml:"end_date" json:"end_date,omitempty"`
	Current     bool     `yaml:"current" json:"current"`
	Description []string `yaml:"description" json:"description"`
	Tech        []string `yaml:"tech" json:"tech"`
}

// DateRange formats the experience period.
func (e Experience) DateRange() string {
	return FormatDateRange(e.StartDate, e.EndDate, e.Current)
}

// TechStack lists technologies by area.
type TechStack struct {
	Frontend        []string `yaml:"frontend" json:"frontend"`
	Backend         []string `yaml:"backend" json:"backend"`
	Tools           []string `yaml:"tools" json:"tools"`
	Specializations []string `yaml:"specializations" json:"specializations"`
}

// PersonalInfo describes the site owner.
type PersonalInfo struct {
	Name        string    `yaml:"name" json:"name"`
	Role        string    `yaml:"role" json:"role"`
	Experience  string    `yaml:"experience" json:"experience"`
	Location    string    `yaml:"location" json:"location"`
	Email       string    `yaml:"email" json:"email"`
	Bio         string    `yaml:"bio" json:"bio"` // Markdown
	Specialties []string  `yaml:"specialties" json:"specialties"`
	TechStack   TechStack `yaml:"tech_stack" json:"tech_stack"`
	Values      []string  `yaml:"values" json:"values"`
}

// SocialLink is an external profile link.
type SocialLink struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
	Icon string `yaml:"icon" json:"icon"`
}

// Stat is a headline number such as "10+ Years Experience".
type Stat struct {
	Label  string `yaml:"label" json:"label"`
	Value  int    `yaml:"value" json:"value"`
	Suffix string `yaml:"suffix" json:"suffix"`
}

// CoreValue is a principle shown on the about page.
type CoreValue struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
}

// FilterOption is an entry in the project filter bar.
type FilterOption struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Catalog is the complete static content of the site. It is read-only after Load.
type Catalog struct {
	Personal      PersonalInfo   `yaml:"personal" json:"personal"`
	Projects      []Project      `yaml:"projects" json:"projects"`
	Skills        []Skill        `yaml:"skills" json:"skills"`
	Experiences   []Experience   `yaml:"experiences" json:"experiences"`
	SocialLinks   []SocialLink   `yaml:"social_links" json:"social_links"`
	Stats         []Stat         `yaml:"stats" json:"stats"`
	CoreValues    []CoreValue    `yaml:"core_values" json:"core_values"`
	FilterOptions []FilterOption `yaml:"filter_options" json:"filter_options"`
}
