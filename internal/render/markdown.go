// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"html/template"
	"log/slog"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/olegiv/folio/internal/cache"
)

// markdownTTL bounds how long rendered catalog markdown is cached. The
// catalog can be reloaded in development, but the key is content-addressed.
const markdownTTL = 24 * time.Hour

// Markdown converts catalog markdown (bio, descriptions) into sanitized HTML.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	cache  *cache.TypedCache[string]
	logger *slog.Logger
}

// NewMarkdown creates a markdown renderer. A nil cacher disables caching.
func NewMarkdown(c cache.Cacher, logger *slog.Logger) *Markdown {
	m := &Markdown{
		md:     goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough)),
		policy: bluemonday.UGCPolicy(),
		logger: logger,
	}
	m.policy.RequireNoFollowOnLinks(true)
	m.policy.AddTargetBlankToFullyQualifiedLinks(true)
	if c != nil {
		m.cache = cache.NewTypedCache[string](c, "md", markdownTTL)
	}
	return m
}

// Render converts markdown source to sanitized HTML.
func (m *Markdown) Render(ctx context.Context, src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	if m.cache == nil {
		html, err := m.convert(src)
		return template.HTML(html), err //nolint:gosec // sanitized by bluemonday
	}

	sum := sha256.Sum256([]byte(src))
	html, err := m.cache.GetOrSet(ctx, hex.EncodeToString(sum[:16]), func() (string, error) {
		return m.convert(src)
	})
	if err != nil {
		return "", err
	}
	return template.HTML(html), nil //nolint:gosec // sanitized by bluemonday
}

func (m *Markdown) convert(src string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return m.policy.Sanitize(buf.String()), nil
}

// Func returns the "markdown" template function. Conversion failures fall
// back to escaped text and are logged.
func (m *Markdown) Func() func(string) template.HTML {
	return func(src string) template.HTML {
		html, err := m.Render(context.Background(), src)
		if err != nil {
			m.logger.Warn("markdown render failed", "error", err)
			return template.HTML(template.HTMLEscapeString(src))
		}
		return html
	}
}
