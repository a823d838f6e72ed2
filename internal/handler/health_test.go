// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/folio/internal/catalog"
	"github.com/olegiv/folio/internal/store"
)

func TestHealth_Healthy(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "v1.0.0", resp["version"])
	checks, ok := resp["checks"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, checks, "catalog")
	assert.Contains(t, checks, "cache")
	assert.NotContains(t, checks, "database")
	assert.NotContains(t, resp, "system")
}

func TestHealth_VerboseInDevelopment(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/health?verbose=true")
	resp := decodeBody(t, w)
	system, ok := resp["system"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, system["go_version"])
}

func TestHealth_ClosedCacheDegrades(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.cache.Close())

	w := app.get(t, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "degraded", decodeBody(t, w)["status"])
}

func TestHealth_Database(t *testing.T) {
	db, err := store.Open(t.TempDir() + "/sessions.db")
	require.NoError(t, err)

	c, err := catalog.Default()
	require.NoError(t, err)
	h := NewHealthHandler(db, nil, catalog.NewStore(c), nil, false)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "dev", resp["version"])
	assert.Contains(t, resp["checks"], "database")

	require.NoError(t, db.Close())

	w = httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", decodeBody(t, w)["status"])

	w = httptest.NewRecorder()
	h.Readiness(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "not_ready", decodeBody(t, w)["status"])
}

func TestHealth_LiveAndReady(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/health/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alive", decodeBody(t, w)["status"])

	w = app.get(t, "/health/ready")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", decodeBody(t, w)["status"])
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.in))
	}
}
