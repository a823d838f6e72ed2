// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/folio/internal/session"
)

func TestLogAndHTTPError(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		statusCode int
		logMsg     string
	}{
		{"bad request", "Bad Request", http.StatusBadRequest, "validation failed"},
		{"not found", "Not Found", http.StatusNotFound, "project missing"},
		{"internal error", "Internal Server Error", http.StatusInternalServerError, "render failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			logAndHTTPError(w, r, tt.message, tt.statusCode, tt.logMsg)

			if w.Code != tt.statusCode {
				t.Errorf("status code = %d, want %d", w.Code, tt.statusCode)
			}

			body := w.Body.String()
			if body == "" {
				t.Error("body should not be empty")
			}
		})
	}
}

func TestLogAndInternalError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	logAndInternalError(w, r, "template execution failed", "error", errors.New("missing block"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status code = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestFlashAndRedirect(t *testing.T) {
	sm := session.New(nil, true)

	var flash session.Flash
	mux := http.NewServeMux()
	mux.HandleFunc("/set", func(w http.ResponseWriter, r *http.Request) {
		flashAndRedirect(w, r, sm, "/#contact", session.Flash{Success: "saved"})
	})
	mux.HandleFunc("/get", func(w http.ResponseWriter, r *http.Request) {
		flash = session.PopFlash(r.Context(), sm)
	})
	h := sm.LoadAndSave(mux)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/set", nil))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status code = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/#contact" {
		t.Errorf("Location = %q, want %q", loc, "/#contact")
	}

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	if flash.Success != "saved" {
		t.Errorf("flash success = %q, want %q", flash.Success, "saved")
	}
}

func TestFlashAndRedirect_NilSessions(t *testing.T) {
	w := httptest.NewRecorder()
	flashAndRedirect(w, httptest.NewRequest(http.MethodPost, "/", nil), nil, "/", session.Flash{Success: "x"})

	if w.Code != http.StatusSeeOther {
		t.Errorf("status code = %d, want %d", w.Code, http.StatusSeeOther)
	}
}
