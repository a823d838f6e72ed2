// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiterCache_GetReusesLimiter(t *testing.T) {
	lc := newLimiterCache[string](1, 2)

	a := lc.get("1.2.3.4")
	if lc.get("1.2.3.4") != a {
		t.Error("get() should return the same limiter for the same key")
	}
	if lc.get("5.6.7.8") == a {
		t.Error("get() should return distinct limiters for distinct keys")
	}
	if lc.len() != 2 {
		t.Errorf("len() = %d, want 2", lc.len())
	}
}

func TestLimiterCache_PruneKeepsActive(t *testing.T) {
	lc := newLimiterCache[string](0.001, 2)

	lc.get("idle")
	busy := lc.get("busy")
	busy.Allow()

	if removed := lc.prune(); removed != 1 {
		t.Errorf("prune() removed %d, want 1", removed)
	}
	if lc.len() != 1 {
		t.Errorf("len() = %d, want 1", lc.len())
	}
	if lc.get("busy") != busy {
		t.Error("busy limiter should survive prune")
	}
}

func TestLimiterCache_ClearIfExceeds(t *testing.T) {
	lc := newLimiterCache[int](1, 1)
	for i := 0; i < 5; i++ {
		lc.get(i)
	}

	if lc.clearIfExceeds(10) {
		t.Error("clearIfExceeds(10) should not clear 5 entries")
	}
	if !lc.clearIfExceeds(4) {
		t.Error("clearIfExceeds(4) should clear 5 entries")
	}
	if lc.len() != 0 {
		t.Errorf("len() = %d after clear", lc.len())
	}
}

func newLimitedHandler(rl *IPRateLimiter) http.Handler {
	return rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	rl := NewIPRateLimiter(0.001, 2)
	handler := newLimitedHandler(rl)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}

	// A different client is unaffected.
	req = httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.RemoteAddr = "198.51.100.1:5555"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", rec.Code)
	}
}

func TestIPRateLimiter_JSONResponse(t *testing.T) {
	rl := NewIPRateLimiter(0.001, 1)
	handler := newLimitedHandler(rl)

	var rec *httptest.ResponseRecorder
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = "203.0.113.9:1"
		req.Header.Set("Accept", "application/json")
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] == "" {
		t.Errorf("body = %v, want error message", body)
	}
}

func TestIPRateLimiter_Prune(t *testing.T) {
	rl := NewIPRateLimiter(1000, 1)
	for i := 0; i < 3; i++ {
		rl.Allow(fmt.Sprintf("10.0.0.%d", i))
	}
	if rl.Tracked() != 3 {
		t.Fatalf("Tracked() = %d, want 3", rl.Tracked())
	}
	// At 1000/s a single token refills in a millisecond.
	time.Sleep(10 * time.Millisecond)
	if removed := rl.Prune(); removed != 3 {
		t.Errorf("Prune() removed %d, want 3", removed)
	}
	if rl.Tracked() != 0 {
		t.Errorf("Tracked() = %d after prune, want 0", rl.Tracked())
	}
}
