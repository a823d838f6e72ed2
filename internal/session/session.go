// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the scs session manager that carries the theme
// preference and one-shot flash banners between requests.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/olegiv/folio/internal/ui"
)

// Session keys.
const (
	KeyFlashSuccess = "flash_success"
	KeyFlashError   = "flash_error"
)

// New creates a session manager. A nil db selects the in-memory store,
// otherwise sessions persist in the SQLite sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	if db != nil {
		sm.Store = sqlite3store.New(db)
	} else {
		sm.Store = memstore.New()
	}

	// The theme preference should outlive a browser restart.
	sm.Lifetime = 365 * 24 * time.Hour
	sm.IdleTimeout = 0
	sm.Cookie.Persist = true
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !isDev
	if !isDev {
		sm.Cookie.Name = "__Host-session"
	}

	return sm
}

// ThemeStore persists the theme preference in the request's session. The
// context passed to its methods must come from a request that went through
// SessionManager.LoadAndSave.
type ThemeStore struct {
	sm *scs.SessionManager
}

// NewThemeStore wraps sm.
func NewThemeStore(sm *scs.SessionManager) *ThemeStore {
	return &ThemeStore{sm: sm}
}

// LoadTheme returns the stored preference or "".
func (s *ThemeStore) LoadTheme(ctx context.Context) string {
	return s.sm.GetString(ctx, ui.ThemeKey)
}

// SaveTheme stores t.
func (s *ThemeStore) SaveTheme(ctx context.Context, t ui.Theme) error {
	s.sm.Put(ctx, ui.ThemeKey, string(t))
	return nil
}

var _ ui.PreferenceStore = (*ThemeStore)(nil)

// Flash holds one-shot banners shown after a redirect.
type Flash struct {
	Success string
	Error   string
}

// PutFlash stores banners for the next page view.
func PutFlash(ctx context.Context, sm *scs.SessionManager, f Flash) {
	if f.Success != "" {
		sm.Put(ctx, KeyFlashSuccess, f.Success)
	}
	if f.Error != "" {
		sm.Put(ctx, KeyFlashError, f.Error)
	}
}

// PopFlash returns and clears pending banners.
func PopFlash(ctx context.Context, sm *scs.SessionManager) Flash {
	return Flash{
		Success: sm.PopString(ctx, KeyFlashSuccess),
		Error:   sm.PopString(ctx, KeyFlashError),
	}
}
