// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio/internal/catalog"
	"github.com/olegiv/folio/internal/contact"
	"github.com/olegiv/folio/internal/render"
	"github.com/olegiv/folio/internal/seo"
)

// Page template names.
const (
	pageHome     = "home"
	pageAbout    = "about"
	pageProjects = "projects"
	pageProject  = "project"
	pageNotFound = "404"

	// projectDetailBlock is the block rendered for partial project requests.
	projectDetailBlock = "project-detail"
)

// homeProjectLimit is the number of projects shown on the home page.
const homeProjectLimit = 4

// skillCategoryOrder is the display order of the skills grid.
var skillCategoryOrder = []struct {
	Category catalog.SkillCategory
	Label    string
}{
	{catalog.CategoryFrontend, "Frontend"},
	{catalog.CategoryBackend, "Backend"},
	{catalog.CategoryTool, "Tools"},
	{catalog.CategorySpecialization, "Specializations"},
}

// SkillGroup is one column of the skills grid.
type SkillGroup struct {
	Category catalog.SkillCategory
	Label    string
	Skills   []catalog.Skill
}

// FilterLink is a filter bar entry with its active state.
type FilterLink struct {
	catalog.FilterOption
	URL    string
	Active bool
}

// ContactFormView is the state of the contact form section.
type ContactFormView struct {
	Values contact.Input
	Errors contact.FieldErrors
	Status contact.Status
	Banner string // Config or failure banner
}

// HomeData is the view model of the single-page home.
type HomeData struct {
	Personal    catalog.PersonalInfo
	Stats       []catalog.Stat
	SkillGroups []SkillGroup
	Projects    []catalog.Project
	Experiences []catalog.Experience
	Form        ContactFormView
}

// AboutData is the view model of the about page.
type AboutData struct {
	Personal    catalog.PersonalInfo
	Stats       []catalog.Stat
	CoreValues  []catalog.CoreValue
	Experiences []catalog.Experience
}

// ProjectsData is the view model of the projects page.
type ProjectsData struct {
	Filter   string
	Filters  []FilterLink
	Projects []catalog.Project
}

// ProjectData is the view model of a project detail page.
type ProjectData struct {
	Project catalog.Project
	Related []catalog.Project
}

// PagesHandler serves the public pages.
type PagesHandler struct {
	site     *Site
	renderer *render.Renderer
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(site *Site, renderer *render.Renderer) *PagesHandler {
	return &PagesHandler{site: site, renderer: renderer}
}

// Home handles GET /.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderHome(w, r, http.StatusOK, ContactFormView{})
}

// renderHome renders the home page with the given contact form state.
func (h *PagesHandler) renderHome(w http.ResponseWriter, r *http.Request, status int, form ContactFormView) {
	c := h.site.Catalog()

	data := h.site.Data(r, nil)
	h.site.addJSONLD(&data, h.site.personSchema())
	data.Data = HomeData{
		Personal:    c.Personal,
		Stats:       c.Stats,
		SkillGroups: skillGroups(c),
		Projects:    catalog.FilterProjects(c.Projects, catalog.FilterAll, homeProjectLimit),
		Experiences: c.Experiences,
		Form:        form,
	}

	if err := h.renderer.RenderStatus(w, r, status, pageHome, data); err != nil {
		logAndInternalError(w, r, "failed to render home page", "error", err)
	}
}

// About handles GET /about.
func (h *PagesHandler) About(w http.ResponseWriter, r *http.Request) {
	c := h.site.Catalog()

	data := h.site.Data(r, &seo.PageData{
		Title:       "About",
		Description: "Learn about " + c.Personal.Name + ", a " + c.Personal.Role + " with " + c.Personal.Experience + " of experience.",
		Path:        "/about",
		Type:        "profile",
	})
	h.site.withCrumbs(&data,
		render.Breadcrumb{Label: "Home", URL: "/"},
		render.Breadcrumb{Label: "About"},
	)
	data.Data = AboutData{
		Personal:    c.Personal,
		Stats:       c.Stats,
		CoreValues:  c.CoreValues,
		Experiences: c.Experiences,
	}

	if err := h.renderer.Render(w, r, pageAbout, data); err != nil {
		logAndInternalError(w, r, "failed to render about page", "error", err)
	}
}

// Projects handles GET /projects with an optional ?filter= tag.
func (h *PagesHandler) Projects(w http.ResponseWriter, r *http.Request) {
	c := h.site.Catalog()
	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = catalog.FilterAll
	}

	data := h.site.Data(r, &seo.PageData{
		Title:       "Projects",
		Description: "Explore my portfolio of web development projects built with React, Next.js, TypeScript, and modern web technologies.",
		Path:        "/projects",
		Keywords:    c.Tags(),
		Type:        "website",
	})
	h.site.withCrumbs(&data,
		render.Breadcrumb{Label: "Home", URL: "/"},
		render.Breadcrumb{Label: "Projects"},
	)
	data.Data = ProjectsData{
		Filter:   filter,
		Filters:  filterLinks(c.FilterOptions, filter),
		Projects: catalog.FilterProjects(c.Projects, filter, 0),
	}

	if err := h.renderer.Render(w, r, pageProjects, data); err != nil {
		logAndInternalError(w, r, "failed to render projects page", "error", err)
	}
}

// Project handles GET /projects/{slug}. Requests sent by the overlay script
// (HX-Request header or ?partial=1) get only the detail fragment.
func (h *PagesHandler) Project(w http.ResponseWriter, r *http.Request) {
	c := h.site.Catalog()
	slug := chi.URLParam(r, "slug")

	p, ok := c.ProjectBySlug(slug)
	if !ok {
		h.NotFound(w, r)
		return
	}

	data := h.site.Data(r, &seo.PageData{
		Title:       p.Title,
		Description: p.Description,
		Path:        "/projects/" + p.Slug,
		Keywords:    p.Tech,
		Image:       p.Image,
	})
	data.Data = ProjectData{
		Project: p,
		Related: relatedProjects(c, p),
	}

	if isPartial(r) {
		w.Header().Add("Vary", "HX-Request")
		if err := h.renderer.RenderFragment(w, pageProject, projectDetailBlock, data); err != nil {
			logAndInternalError(w, r, "failed to render project fragment", "error", err, "slug", slug)
		}
		return
	}

	h.site.withCrumbs(&data,
		render.Breadcrumb{Label: "Home", URL: "/"},
		render.Breadcrumb{Label: "Projects", URL: "/projects"},
		render.Breadcrumb{Label: p.Title},
	)
	h.site.addJSONLD(&data, seo.BuildWorkSchema(seo.Work{
		Title:       p.Title,
		Description: p.Description,
		Path:        "/projects/" + p.Slug,
		Image:       p.Image,
		Repository:  p.GitHub,
		Tech:        p.Tech,
		AuthorName:  c.Personal.Name,
	}, h.site.seoConfig()))

	if err := h.renderer.Render(w, r, pageProject, data); err != nil {
		logAndInternalError(w, r, "failed to render project page", "error", err, "slug", slug)
	}
}

// ContactRedirect handles GET /contact. The form lives on the home page.
func (h *PagesHandler) ContactRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/#contact", http.StatusFound)
}

// NotFound renders the 404 page.
func (h *PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	data := h.site.Data(r, &seo.PageData{
		Title:       "Page Not Found",
		Description: "The page you're looking for doesn't exist or has been moved.",
		Path:        r.URL.Path,
		NoIndex:     true,
	})

	if err := h.renderer.RenderStatus(w, r, http.StatusNotFound, pageNotFound, data); err != nil {
		logAndHTTPError(w, r, "Not Found", http.StatusNotFound, "failed to render 404 page", "error", err)
	}
}

func skillGroups(c *catalog.Catalog) []SkillGroup {
	byCat := c.SkillsByCategory()
	groups := make([]SkillGroup, 0, len(skillCategoryOrder))
	for _, sc := range skillCategoryOrder {
		if skills := byCat[sc.Category]; len(skills) > 0 {
			groups = append(groups, SkillGroup{Category: sc.Category, Label: sc.Label, Skills: skills})
		}
	}
	return groups
}

func filterLinks(options []catalog.FilterOption, active string) []FilterLink {
	active = catalog.NormalizeFilter(active)
	links := make([]FilterLink, 0, len(options))
	for _, opt := range options {
		u := "/projects"
		if catalog.NormalizeFilter(opt.Value) != catalog.FilterAll {
			u += "?filter=" + url.QueryEscape(opt.Value)
		}
		links = append(links, FilterLink{
			FilterOption: opt,
			URL:          u,
			Active:       catalog.NormalizeFilter(opt.Value) == active,
		})
	}
	return links
}

// relatedProjects returns up to two other projects sharing a tech tag.
func relatedProjects(c *catalog.Catalog, p catalog.Project) []catalog.Project {
	var out []catalog.Project
	for _, t := range p.Tech {
		for _, other := range catalog.FilterProjects(c.Projects, t, 0) {
			if other.ID == p.ID || containsProject(out, other.ID) {
				continue
			}
			out = append(out, other)
			if len(out) == 2 {
				return out
			}
		}
	}
	return out
}

func containsProject(ps []catalog.Project, id int) bool {
	for _, p := range ps {
		if p.ID == id {
			return true
		}
	}
	return false
}

func isPartial(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" || r.URL.Query().Get("partial") == "1"
}
