// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/folio/internal/handler"
	"github.com/olegiv/folio/internal/middleware"
	"github.com/olegiv/folio/web"
)

// staticMaxAge is the Cache-Control max-age for embedded assets (1 year).
const staticMaxAge = 31536000

// newRouter builds the middleware stack and registers every route.
func (a *app) newRouter() (http.Handler, error) {
	cfg := a.cfg
	sm := a.sessions
	h := a.handlers

	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))                    // Gzip compression with level 5
	r.Use(chimw.GetHead)                        // Handle HEAD requests for uptime monitoring
	r.Use(middleware.Timeout(30 * time.Second)) // 30 second request timeout
	r.Use(middleware.StripTrailingSlash)        // Redirect /path/ to /path (301)

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment(), middleware.CSPSources{
		HCaptcha:  cfg.HCaptchaEnabled(),
		Analytics: cfg.AnalyticsActive(),
	})
	r.Use(middleware.SecurityHeaders(securityConfig))
	r.Use(middleware.ColorSchemeHint)
	r.Use(middleware.RequestPath)

	// Static assets are embedded and need no session.
	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return nil, fmt.Errorf("getting static fs: %w", err)
	}
	staticHandler := middleware.StaticCache(staticMaxAge)(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Handle(handler.RouteStatic, staticHandler)

	// Operational routes
	r.Get(handler.RouteHealth, h.health.Health)
	r.Get(handler.RouteHealthLive, h.health.Liveness)
	r.Get(handler.RouteHealthReady, h.health.Readiness)
	r.Get(handler.RouteRobots, h.seo.Robots)
	r.Get(handler.RouteSitemap, h.seo.Sitemap)
	r.Get(handler.RouteSecurityTxt, h.seo.SecurityTxt)

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.SiteURL))

	r.Group(func(r chi.Router) {
		r.Use(sm.LoadAndSave)
		r.Use(csrfMiddleware)

		r.Get(handler.RouteHome, h.pages.Home)
		r.Get(handler.RouteAbout, h.pages.About)
		r.Get(handler.RouteProjects, h.pages.Projects)
		r.Get(handler.RouteProjectSlug, h.pages.Project)
		r.Get(handler.RouteContact, h.pages.ContactRedirect)

		r.With(a.limiter.Middleware()).Post(handler.RouteContact, h.contact.Submit)
		r.With(a.limiter.Middleware()).Post(handler.RouteTheme, h.theme.Set)

		r.With(middleware.NoStore).Post(handler.RouteAPIContact, h.contact.API)
	})

	// The 404 page reads the theme from the session.
	r.NotFound(sm.LoadAndSave(http.HandlerFunc(h.pages.NotFound)).ServeHTTP)

	return r, nil
}
