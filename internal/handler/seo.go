// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/folio/internal/cache"
	"github.com/olegiv/folio/internal/seo"
)

// sitemapTTL bounds how long a generated sitemap is cached. Keys include the
// catalog version so a reload takes effect immediately.
const sitemapTTL = time.Hour

// staticPages are the non-project pages listed in the sitemap.
var staticPages = []string{RouteAbout, RouteProjects}

// crawlClosed are routes with nothing to index: form posts, the contact
// redirect and health checks.
var crawlClosed = []string{"/api/", RouteContact, RouteTheme, RouteHealth}

// SEOHandler serves robots.txt, sitemap.xml and security.txt.
type SEOHandler struct {
	site     *Site
	sitemaps *cache.TypedCache[[]byte]
	started  time.Time
	logger   *slog.Logger
}

// NewSEOHandler creates a new SEOHandler. A nil cacher disables sitemap caching.
func NewSEOHandler(site *Site, c cache.Cacher, logger *slog.Logger) *SEOHandler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &SEOHandler{site: site, started: time.Now().UTC(), logger: logger}
	if c != nil {
		h.sitemaps = cache.NewTypedCache[[]byte](c, "sitemap", sitemapTTL)
	}
	return h
}

// Robots handles GET /robots.txt. Development builds disallow everything.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	cfg := h.site.Config()
	robots := seo.Robots{SiteURL: cfg.URL, Private: cfg.IsDev, Closed: crawlClosed}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(robots.String()))
}

// Sitemap handles GET /sitemap.xml.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	build := func() ([]byte, error) {
		c := h.site.Catalog()
		slugs := make([]string, 0, len(c.Projects))
		for _, p := range c.Projects {
			slugs = append(slugs, p.Slug)
		}
		return seo.GenerateSitemap(h.site.Config().URL, staticPages, slugs, h.started)
	}

	var (
		body []byte
		err  error
	)
	if h.sitemaps != nil {
		version := strconv.FormatUint(h.site.catalog.Version(), 10)
		body, err = h.sitemaps.GetOrSet(r.Context(), version, build)
	} else {
		body, err = build()
	}
	if err != nil {
		logAndInternalError(w, r, "failed to build sitemap", "error", err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}

// PurgeSitemaps drops sitemaps built for earlier catalog versions.
func (h *SEOHandler) PurgeSitemaps(ctx context.Context) {
	if h.sitemaps == nil {
		return
	}
	if err := h.sitemaps.Purge(ctx); err != nil {
		h.logger.WarnContext(ctx, "failed to purge cached sitemaps", "error", err)
	}
}

// SecurityTxt handles GET /.well-known/security.txt.
func (h *SEOHandler) SecurityTxt(w http.ResponseWriter, _ *http.Request) {
	cfg := h.site.Config()
	txt := seo.SecurityTxt{
		Contact:            []string{h.site.Catalog().Personal.Email},
		Canonical:          cfg.URL + "/.well-known/security.txt",
		PreferredLanguages: "en",
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(txt.Build(time.Now())))
}
