// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the page templates and executes them with the
// site-wide data every page needs.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/folio/internal/seo"
	"github.com/olegiv/folio/internal/session"
	"github.com/olegiv/folio/internal/ui"
)

// Template directories inside the templates filesystem.
const (
	layoutFile  = "layouts/base.html"
	partialsDir = "partials"
	pagesDir    = "pages"
)

// blankLinesRegex matches runs of blank lines left behind by template actions.
var blankLinesRegex = regexp.MustCompile(`(\r?\n[ \t]*)+\r?\n`)

// Renderer handles template rendering with caching.
type Renderer struct {
	templatesFS fs.FS
	sessions    *scs.SessionManager
	funcs       template.FuncMap
	isDev       bool

	mu        sync.RWMutex
	templates map[string]*template.Template
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	// Funcs are merged over the built-in template functions.
	Funcs template.FuncMap
	// IsDev re-parses templates on every render.
	IsDev bool
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templatesFS: cfg.TemplatesFS,
		sessions:    cfg.SessionManager,
		isDev:       cfg.IsDev,
		funcs:       baseFuncs(),
	}
	for name, fn := range cfg.Funcs {
		r.funcs[name] = fn
	}

	templates, err := r.parseTemplates()
	if err != nil {
		return nil, err
	}
	r.templates = templates

	return r, nil
}

// parseTemplates parses every page with the base layout and all partials.
func (r *Renderer) parseTemplates() (map[string]*template.Template, error) {
	partials, err := templateFiles(r.templatesFS, partialsDir)
	if err != nil {
		return nil, fmt.Errorf("getting partials: %w", err)
	}
	pages, err := templateFiles(r.templatesFS, pagesDir)
	if err != nil {
		return nil, fmt.Errorf("getting pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no page templates found in %s", pagesDir)
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, pagePath := range pages {
		name := strings.TrimSuffix(path.Base(pagePath), ".html")

		files := []string{layoutFile}
		files = append(files, partials...)
		files = append(files, pagePath)

		tmpl, err := template.New("").Funcs(r.funcs).ParseFS(r.templatesFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return templates, nil
}

// templateFiles returns all .html files in a directory.
func templateFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// lookup returns the named page template, re-parsing first in development.
func (r *Renderer) lookup(name string) (*template.Template, error) {
	if r.isDev {
		templates, err := r.parseTemplates()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.templates = templates
		r.mu.Unlock()
	}

	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("template %s not found", name)
	}
	return tmpl, nil
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.templates[name]
	return ok
}

// Site is the site-wide data shared by every page.
type Site struct {
	Name        string
	Role        string
	Email       string
	Location    string
	Socials     []SocialLink
	AnalyticsID string
	Captcha     template.HTML
	UIConfig    string // JSON for the browser adapter
}

// SocialLink is a rendered social profile link.
type SocialLink struct {
	Name string
	URL  string
	Icon ui.Icon
}

// Breadcrumb is a navigation crumb. The last one is rendered without a link.
type Breadcrumb struct {
	Label string
	URL   string
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Meta        *seo.Meta
	JSONLD      []template.JS
	Site        Site
	Theme       ui.Theme
	Breadcrumbs []Breadcrumb
	Flash       session.Flash
	Data        any
	CurrentPath string
	CurrentYear int
}

// Render renders a page with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a page inside the base layout with the given status.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	data.CurrentYear = time.Now().Year()
	data.CurrentPath = req.URL.Path
	if data.Theme == "" {
		data.Theme = ui.ThemeLight
	}
	if r.sessions != nil && data.Flash == (session.Flash{}) {
		data.Flash = session.PopFlash(req.Context(), r.sessions)
	}

	return r.execute(w, status, name, "base", data)
}

// RenderFragment renders a single named block of a page without the layout.
// It serves partial updates such as the project detail overlay.
func (r *Renderer) RenderFragment(w http.ResponseWriter, name, block string, data TemplateData) error {
	data.CurrentYear = time.Now().Year()
	return r.execute(w, http.StatusOK, name, block, data)
}

func (r *Renderer) execute(w http.ResponseWriter, status int, name, entry string, data TemplateData) error {
	tmpl, err := r.lookup(name)
	if err != nil {
		return err
	}

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, entry, data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	out := blankLinesRegex.ReplaceAll(buf.Bytes(), []byte("\n"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(out)
	return nil
}
