// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/folio/internal/middleware"
	"github.com/olegiv/folio/internal/session"
	"github.com/olegiv/folio/internal/ui"
)

// ThemeHandler switches the color theme stored in the session.
type ThemeHandler struct {
	sessions *scs.SessionManager
	logger   *slog.Logger
}

// NewThemeHandler creates a new ThemeHandler.
func NewThemeHandler(sessions *scs.SessionManager, logger *slog.Logger) *ThemeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ThemeHandler{sessions: sessions, logger: logger}
}

// Set handles POST /theme. A valid "theme" form value is applied as is,
// otherwise the current theme is toggled. Script callers asking for JSON get
// the new theme back; form posts are redirected to the page they came from.
func (h *ThemeHandler) Set(w http.ResponseWriter, r *http.Request) {
	shell := ui.NewShell(r.Context(), session.NewThemeStore(h.sessions), middleware.SystemColorScheme(r))

	var (
		theme ui.Theme
		err   error
	)
	if t, ok := ui.ParseTheme(r.PostFormValue(ui.ThemeKey)); ok {
		theme = t
		err = shell.SetTheme(r.Context(), t)
	} else {
		theme, err = shell.ToggleTheme(r.Context())
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to save theme", "error", err)
		if acceptsJSON(r) {
			writeJSONError(w, http.StatusInternalServerError, "Failed to save theme")
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if acceptsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]string{ui.ThemeKey: string(theme)})
		return
	}
	http.Redirect(w, r, safeRedirectTarget(r, "/"), http.StatusSeeOther)
}

// acceptsJSON reports whether the caller prefers a JSON response.
func acceptsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
