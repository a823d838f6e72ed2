// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package hcaptcha

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/olegiv/folio/internal/contact"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestVerify_EmptyToken(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	v := New("site", "secret", testLogger(), WithVerifyURL(srv.URL))
	err := v.Verify(context.Background(), "  ", "1.2.3.4")
	if !errors.Is(err, contact.ErrCaptchaMissing) {
		t.Errorf("Verify() error = %v, want ErrCaptchaMissing", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("empty token should not reach the API")
	}
}

func TestVerify_Success(t *testing.T) {
	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		form = r.PostForm
		_, _ = w.Write([]byte(`{"success":true,"hostname":"localhost"}`))
	}))
	defer srv.Close()

	v := New("site", "secret", testLogger(), WithVerifyURL(srv.URL))
	if err := v.Verify(context.Background(), "token-1", "1.2.3.4"); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if form.Get("secret") != "secret" || form.Get("response") != "token-1" || form.Get("remoteip") != "1.2.3.4" {
		t.Errorf("unexpected form: %v", form)
	}
}

func TestVerify_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
	defer srv.Close()

	v := New("site", "secret", testLogger(), WithVerifyURL(srv.URL))
	err := v.Verify(context.Background(), "bad", "")
	if !IsRejected(err) {
		t.Fatalf("Verify() error = %v, want RejectedError", err)
	}
	if !strings.Contains(err.Error(), "invalid-input-response") {
		t.Errorf("error %q should carry the code", err)
	}
	if errors.Is(err, contact.ErrCaptchaMissing) {
		t.Error("rejection must not look like a missing token")
	}
}

func TestVerify_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	v := New("site", "secret", testLogger(), WithVerifyURL(srv.URL))
	if err := v.Verify(context.Background(), "x", ""); err == nil {
		t.Error("expected parse error")
	}
}

func TestResponseFromForm(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(FormField+"=abc"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if got := ResponseFromForm(r); got != "abc" {
		t.Errorf("ResponseFromForm() = %q", got)
	}
}

func TestWidget(t *testing.T) {
	v := New(`key"<x>`, "secret", testLogger())
	html := string(v.Widget("dark"))

	if !strings.Contains(html, "hcaptcha.com/1/api.js") {
		t.Error("hCaptcha script not found")
	}
	if !strings.Contains(html, `data-theme="dark"`) {
		t.Error("theme attribute not found")
	}
	if strings.Contains(html, `key"<x>`) {
		t.Error("site key must be escaped")
	}
	if v.SiteKey() != `key"<x>` {
		t.Errorf("SiteKey() = %q", v.SiteKey())
	}
}
