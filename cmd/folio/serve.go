// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/olegiv/folio/internal/cache"
	"github.com/olegiv/folio/internal/catalog"
	"github.com/olegiv/folio/internal/config"
	"github.com/olegiv/folio/internal/contact"
	"github.com/olegiv/folio/internal/geoip"
	"github.com/olegiv/folio/internal/handler"
	"github.com/olegiv/folio/internal/hcaptcha"
	"github.com/olegiv/folio/internal/logging"
	"github.com/olegiv/folio/internal/middleware"
	"github.com/olegiv/folio/internal/relay"
	"github.com/olegiv/folio/internal/render"
	"github.com/olegiv/folio/internal/scheduler"
	"github.com/olegiv/folio/internal/session"
	"github.com/olegiv/folio/internal/store"
	"github.com/olegiv/folio/internal/ui"
	"github.com/olegiv/folio/web"
)

// Maintenance job schedules.
const (
	scheduleCacheSweep   = "@every 5m"
	scheduleLimiterPrune = "@every 10m"
	scheduleGeoIPReload  = "@daily"
)

func newServeCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Load .env files if present (development)
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("loading %s: %w", envFile, err)
				}
			} else {
				_ = godotenv.Load()
			}
			return run()
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment")

	return cmd
}

// app holds the long-lived components built from the configuration.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	cache    cache.Cacher
	db       *sql.DB
	catalog  *catalog.Store
	geo      *geoip.Lookup
	sessions *scs.SessionManager
	limiter  *middleware.IPRateLimiter
	handlers handlers

	closers []func()
}

// handlers groups the route handlers.
type handlers struct {
	pages   *handler.PagesHandler
	contact *handler.ContactHandler
	theme   *handler.ThemeHandler
	health  *handler.HealthHandler
	seo     *handler.SEOHandler
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	sched := scheduler.New(logger)
	if err := a.registerJobs(sched); err != nil {
		return fmt.Errorf("registering jobs: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	r, err := a.newRouter()
	if err != nil {
		return err
	}

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", appVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// newApp wires every component. The caller must call close.
func newApp(cfg *config.Config, logger *slog.Logger) (_ *app, err error) {
	a := &app{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	// Cache backend; expired memory entries are swept by the scheduler.
	var backend string
	a.cache, backend = cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTLDuration(),
		MaxSize:    cfg.CacheMaxSize,
	}, logger)
	a.onClose(func() {
		if err := a.cache.Close(); err != nil {
			logger.Error("error closing cache", "error", err)
		}
	})
	logger.Info("cache initialized", "backend", backend)

	// Optional SQLite session store
	if cfg.UseSQLiteSessions() {
		if err := os.MkdirAll(filepath.Dir(cfg.SessionDBPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating session data directory: %w", err)
		}
		logger.Info("initializing session database", "path", cfg.SessionDBPath)
		db, err := store.Open(cfg.SessionDBPath)
		if err != nil {
			return nil, fmt.Errorf("initializing session database: %w", err)
		}
		a.db = db
		a.onClose(func() {
			if err := db.Close(); err != nil {
				logger.Error("error closing database connection", "error", err)
			}
		})
	}
	a.sessions = session.New(a.db, cfg.IsDevelopment())
	logger.Info("session manager initialized", "sqlite", a.db != nil)

	// Catalog
	c, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	a.catalog = catalog.NewStore(c)
	logger.Info("catalog loaded", "projects", len(c.Projects), "path", cfg.CatalogPath)

	var watcher *catalog.Watcher
	if cfg.IsDevelopment() && cfg.CatalogPath != "" {
		watcher, err = catalog.NewWatcher(cfg.CatalogPath, a.catalog, logger)
		if err != nil {
			return nil, fmt.Errorf("creating catalog watcher: %w", err)
		}
		a.onClose(watcher.Stop)
		if err := watcher.Start(context.Background()); err != nil {
			return nil, fmt.Errorf("starting catalog watcher: %w", err)
		}
	}

	// GeoIP enrichment of contact logs
	a.geo = geoip.NewLookup()
	if err := a.geo.Init(cfg.GeoIPDBPath); err != nil {
		logger.Warn("geoip disabled", "error", err)
	}
	a.onClose(func() { _ = a.geo.Close() })

	captcha, service, endpoint := a.contactServices()

	// Template renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("getting templates fs: %w", err)
	}
	markdown := render.NewMarkdown(a.cache, logger)
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: a.sessions,
		Funcs:          map[string]any{"markdown": markdown.Func()},
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return nil, fmt.Errorf("initializing renderer: %w", err)
	}
	logger.Info("template renderer initialized")

	analyticsID := ""
	if cfg.AnalyticsActive() {
		analyticsID = cfg.AnalyticsID
	}
	owner := c.Personal
	site := handler.NewSite(a.catalog, a.sessions, captcha, handler.SiteConfig{
		Name:        owner.Name + " Portfolio",
		URL:         cfg.SiteURL,
		Description: owner.Role + " building fast, accessible web applications.",
		OGImage:     "/static/images/og-image.svg",
		AnalyticsID: analyticsID,
		IsDev:       cfg.IsDevelopment(),
	}, ui.DefaultConfig(contact.SuccessBannerTTL))

	pages := handler.NewPagesHandler(site, renderer)
	a.handlers = handlers{
		pages:   pages,
		contact: handler.NewContactHandler(pages, a.sessions, service, endpoint, logger),
		theme:   handler.NewThemeHandler(a.sessions, logger),
		health:  handler.NewHealthHandler(a.db, a.cache, a.catalog, versionInfo(), cfg.IsDevelopment()),
		seo:     handler.NewSEOHandler(site, a.cache, logger),
	}
	a.limiter = middleware.NewIPRateLimiter(cfg.ContactRate, cfg.ContactBurst)

	if watcher != nil {
		watcher.OnReload(func(*catalog.Catalog) {
			a.handlers.seo.PurgeSitemaps(context.Background())
		})
	}

	return a, nil
}

func (a *app) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

// close releases resources in reverse order of acquisition.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// contactServices builds the captcha verifier, the form service and the
// strategy behind POST /api/contact.
func (a *app) contactServices() (*hcaptcha.Verifier, *contact.Service, contact.Deliverer) {
	cfg := a.cfg

	var captcha *hcaptcha.Verifier
	opts := []contact.Option{
		contact.WithLogger(a.logger),
		contact.WithCountryLookup(a.geo),
	}
	if cfg.HCaptchaEnabled() {
		captcha = hcaptcha.New(cfg.HCaptchaSiteKey, cfg.HCaptchaSecretKey, a.logger)
		opts = append(opts, contact.WithCaptcha(captcha))
		a.logger.Info("hcaptcha enabled for contact form")
	}

	endpoint := contact.NewEndpointDeliverer(a.logger)

	var formDeliverer contact.Deliverer = endpoint
	if cfg.ContactDelivery == config.DeliveryRelay {
		client := relay.New(cfg.RelayConfig(), &http.Client{Timeout: 15 * time.Second})
		formDeliverer = contact.NewRelayDeliverer(client)
		if missing := cfg.RelayConfig().Missing(); len(missing) > 0 {
			a.logger.Warn("email relay not configured, contact form will report a configuration error",
				"missing", missing)
		}
	}
	a.logger.Info("contact delivery configured", "form", formDeliverer.Name(), "api", endpoint.Name())

	return captcha, contact.NewService(formDeliverer, cfg.OwnerEmail, opts...), endpoint
}

// registerJobs adds the periodic maintenance tasks.
func (a *app) registerJobs(s *scheduler.Scheduler) error {
	if mc, ok := a.cache.(*cache.MemoryCache); ok {
		if err := s.Add("cache-sweep", "Remove expired cache entries", scheduleCacheSweep,
			func(context.Context) error {
				if n := mc.RemoveExpired(); n > 0 {
					a.logger.Debug("expired cache entries removed", "count", n)
				}
				return nil
			}); err != nil {
			return err
		}
	}

	if err := s.Add("limiter-prune", "Release idle per-IP rate limiters", scheduleLimiterPrune,
		func(context.Context) error {
			a.limiter.Prune()
			return nil
		}); err != nil {
		return err
	}

	if a.cfg.GeoIPEnabled() {
		if err := s.Add("geoip-reload", "Reopen the GeoIP database when the file changes", scheduleGeoIPReload,
			func(context.Context) error {
				return a.geo.Reload()
			}); err != nil {
			return err
		}
	}

	return nil
}
