// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers for the portfolio pages, the
// contact endpoints and the operational routes.
package handler

import (
	"html/template"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/folio/internal/catalog"
	"github.com/olegiv/folio/internal/hcaptcha"
	"github.com/olegiv/folio/internal/middleware"
	"github.com/olegiv/folio/internal/render"
	"github.com/olegiv/folio/internal/seo"
	"github.com/olegiv/folio/internal/session"
	"github.com/olegiv/folio/internal/ui"
)

// SiteConfig holds site-wide settings that do not come from the catalog.
type SiteConfig struct {
	Name        string // Site name used in titles and Open Graph
	URL         string // Public base URL without trailing slash
	Description string
	OGImage     string
	AnalyticsID string // Empty disables the analytics snippet
	IsDev       bool
}

// Site builds the data shared by every rendered page: owner details, theme,
// meta tags and the browser config.
type Site struct {
	catalog  *catalog.Store
	sessions *scs.SessionManager
	captcha  *hcaptcha.Verifier
	cfg      SiteConfig
	uiJSON   string
}

// NewSite creates a page data builder. sessions and captcha may be nil.
func NewSite(store *catalog.Store, sessions *scs.SessionManager, captcha *hcaptcha.Verifier, cfg SiteConfig, uiCfg ui.Config) *Site {
	return &Site{
		catalog:  store,
		sessions: sessions,
		captcha:  captcha,
		cfg:      cfg,
		uiJSON:   uiCfg.JSON(),
	}
}

// Config returns the site settings.
func (s *Site) Config() SiteConfig {
	return s.cfg
}

// Catalog returns the active catalog.
func (s *Site) Catalog() *catalog.Catalog {
	return s.catalog.Get()
}

// seoConfig converts the site settings for the seo package.
func (s *Site) seoConfig() *seo.SiteConfig {
	return &seo.SiteConfig{
		SiteName:        s.cfg.Name,
		SiteURL:         s.cfg.URL,
		SiteDescription: s.cfg.Description,
		DefaultOGImage:  s.cfg.OGImage,
	}
}

// Theme resolves the theme for a request: the session preference first,
// then the system hint, then light.
func (s *Site) Theme(r *http.Request) ui.Theme {
	var persisted string
	if s.sessions != nil {
		persisted = session.NewThemeStore(s.sessions).LoadTheme(r.Context())
	}
	return ui.ResolveTheme(persisted, middleware.SystemColorScheme(r))
}

// Data returns the template data for a page. A nil page yields the homepage meta.
func (s *Site) Data(r *http.Request, page *seo.PageData) render.TemplateData {
	c := s.catalog.Get()
	theme := s.Theme(r)

	site := render.Site{
		Name:        c.Personal.Name,
		Role:        c.Personal.Role,
		Email:       c.Personal.Email,
		Location:    c.Personal.Location,
		AnalyticsID: s.cfg.AnalyticsID,
		UIConfig:    s.uiJSON,
	}
	for _, l := range c.SocialLinks {
		site.Socials = append(site.Socials, render.SocialLink{
			Name: l.Name,
			URL:  l.URL,
			Icon: ui.IconFor(l.Icon),
		})
	}
	if s.captcha != nil {
		site.Captcha = s.captcha.Widget(string(theme))
	}

	data := render.TemplateData{
		Meta:  seo.BuildMeta(page, s.seoConfig()),
		Site:  site,
		Theme: theme,
	}
	data.Title = data.Meta.Title
	return data
}

// withCrumbs sets the visible breadcrumbs and their JSON-LD form.
func (s *Site) withCrumbs(data *render.TemplateData, crumbs ...render.Breadcrumb) {
	data.Breadcrumbs = crumbs
	sc := make([]seo.Crumb, 0, len(crumbs))
	for _, c := range crumbs {
		sc = append(sc, seo.Crumb{Name: c.Label, Path: c.URL})
	}
	s.addJSONLD(data, seo.BuildBreadcrumbSchema(sc, s.seoConfig()))
}

func (s *Site) addJSONLD(data *render.TemplateData, js template.JS) {
	if js != "" {
		data.JSONLD = append(data.JSONLD, js)
	}
}

// personSchema returns the owner's JSON-LD Person data.
func (s *Site) personSchema() template.JS {
	c := s.catalog.Get()
	p := seo.Person{
		Name:     c.Personal.Name,
		JobTitle: c.Personal.Role,
		Email:    c.Personal.Email,
		Location: c.Personal.Location,
		Skills:   make([]string, 0, len(c.Skills)),
	}
	for _, sk := range c.Skills {
		p.Skills = append(p.Skills, sk.Name)
	}
	for _, l := range c.SocialLinks {
		if ui.IconKey(l.Icon) != ui.IconMail {
			p.Profiles = append(p.Profiles, l.URL)
		}
	}
	return seo.BuildPersonSchema(p, s.seoConfig())
}
