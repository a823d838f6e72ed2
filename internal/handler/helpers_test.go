// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/folio/internal/cache"
	"github.com/olegiv/folio/internal/catalog"
	"github.com/olegiv/folio/internal/contact"
	"github.com/olegiv/folio/internal/render"
	"github.com/olegiv/folio/internal/session"
	"github.com/olegiv/folio/internal/ui"
	"github.com/olegiv/folio/internal/version"
	"github.com/olegiv/folio/web"
)

// recordingDeliverer captures delivered submissions and returns err.
type recordingDeliverer struct {
	mu   sync.Mutex
	subs []contact.Submission
	err  error
}

func (d *recordingDeliverer) Name() string { return "recording" }

func (d *recordingDeliverer) Deliver(_ context.Context, s contact.Submission) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = append(d.subs, s)
	return d.err
}

func (d *recordingDeliverer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

// testApp is a fully wired router over the embedded templates.
type testApp struct {
	router   http.Handler
	sessions *scs.SessionManager
	form     *recordingDeliverer
	api      *recordingDeliverer
	cache    *cache.MemoryCache
	store    *catalog.Store
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	c, err := catalog.Default()
	require.NoError(t, err)
	store := catalog.NewStore(c)

	sm := session.New(nil, true)
	logger := testLogger()

	mc := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mc.Close() })

	templates, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	renderer, err := render.New(render.Config{
		TemplatesFS:    templates,
		SessionManager: sm,
		Funcs:          map[string]any{"markdown": render.NewMarkdown(mc, logger).Func()},
	})
	require.NoError(t, err)

	site := NewSite(store, sm, nil, SiteConfig{
		Name:        "Ali Kiani Portfolio",
		URL:         "https://alikiani.co",
		Description: "Senior Frontend Developer",
		OGImage:     "/static/images/og-image.svg",
		IsDev:       true,
	}, ui.DefaultConfig(contact.SuccessBannerTTL))

	form := &recordingDeliverer{}
	api := &recordingDeliverer{}
	service := contact.NewService(form, "ali@alikiani.co", contact.WithLogger(logger))

	pages := NewPagesHandler(site, renderer)
	contactH := NewContactHandler(pages, sm, service, api, logger)
	themeH := NewThemeHandler(sm, logger)
	healthH := NewHealthHandler(nil, mc, store, &version.Info{Version: "v1.0.0"}, true)
	seoH := NewSEOHandler(site, mc, logger)

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Get(RouteHome, pages.Home)
	r.Get(RouteAbout, pages.About)
	r.Get(RouteProjects, pages.Projects)
	r.Get(RouteProjectSlug, pages.Project)
	r.Get(RouteContact, pages.ContactRedirect)
	r.Post(RouteContact, contactH.Submit)
	r.Post(RouteAPIContact, contactH.API)
	r.Post(RouteTheme, themeH.Set)
	r.Get(RouteHealth, healthH.Health)
	r.Get(RouteHealthLive, healthH.Liveness)
	r.Get(RouteHealthReady, healthH.Readiness)
	r.Get(RouteRobots, seoH.Robots)
	r.Get(RouteSitemap, seoH.Sitemap)
	r.Get(RouteSecurityTxt, seoH.SecurityTxt)
	r.NotFound(pages.NotFound)

	return &testApp{router: r, sessions: sm, form: form, api: api, cache: mc, store: store}
}

// do sends a request, forwarding cookies from prev when given.
func (a *testApp) do(t *testing.T, req *http.Request, prev *http.Response) *httptest.ResponseRecorder {
	t.Helper()
	if prev != nil {
		for _, c := range prev.Cookies() {
			req.AddCookie(c)
		}
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, httptest.NewRequest(http.MethodGet, target, nil), nil)
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func mustRequest(t *testing.T, method, target string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, target, nil)
}
