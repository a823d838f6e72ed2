// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"

	"github.com/olegiv/folio/internal/logging"
)

// PrefersColorSchemeHeader is the client hint carrying the system theme.
const PrefersColorSchemeHeader = "Sec-CH-Prefers-Color-Scheme"

// RequestPath stores the request path in context for the logging handler.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithPath(r.Context(), r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ColorSchemeHint asks supporting browsers to send the system color scheme
// so the first render can use it.
func ColorSchemeHint(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Accept-CH", PrefersColorSchemeHeader)
		h.Set("Critical-CH", PrefersColorSchemeHeader)
		h.Add("Vary", PrefersColorSchemeHeader)
		next.ServeHTTP(w, r)
	})
}

// SystemColorScheme returns "light", "dark" or "" from the client hint.
func SystemColorScheme(r *http.Request) string {
	switch r.Header.Get(PrefersColorSchemeHeader) {
	case "dark", `"dark"`:
		return "dark"
	case "light", `"light"`:
		return "light"
	}
	return ""
}
