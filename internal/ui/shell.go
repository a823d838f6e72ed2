// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Theme is the color scheme preference.
type Theme string

// Themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeKey is the name under which the preference is persisted.
const ThemeKey = "theme"

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ResolveTheme picks the persisted preference when valid, then the system
// preference, then light.
func ResolveTheme(persisted, system string) Theme {
	if t, ok := ParseTheme(persisted); ok {
		return t
	}
	if t, ok := ParseTheme(system); ok {
		return t
	}
	return ThemeLight
}

// PreferenceStore persists the theme preference.
type PreferenceStore interface {
	LoadTheme(ctx context.Context) string
	SaveTheme(ctx context.Context, t Theme) error
}

// Shell is the process-wide UI state of one page shell: the theme and
// whether the mobile menu is open.
type Shell struct {
	mu       sync.Mutex
	store    PreferenceStore
	theme    Theme
	menuOpen bool
}

// NewShell resolves the initial theme from the store, falling back to the
// system preference.
func NewShell(ctx context.Context, store PreferenceStore, systemPreference string) *Shell {
	return &Shell{
		store: store,
		theme: ResolveTheme(store.LoadTheme(ctx), systemPreference),
	}
}

// Theme returns the active theme.
func (s *Shell) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme applies and persists t.
func (s *Shell) SetTheme(ctx context.Context, t Theme) error {
	s.mu.Lock()
	s.theme = t
	s.mu.Unlock()
	if err := s.store.SaveTheme(ctx, t); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

// ToggleTheme flips and persists the theme.
func (s *Shell) ToggleTheme(ctx context.Context) (Theme, error) {
	next := s.Theme().Toggle()
	return next, s.SetTheme(ctx, next)
}

// MenuOpen reports whether the mobile menu is open.
func (s *Shell) MenuOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menuOpen
}

// ToggleMenu opens or closes the mobile menu.
func (s *Shell) ToggleMenu() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menuOpen = !s.menuOpen
	return s.menuOpen
}

// CloseMenu closes the mobile menu.
func (s *Shell) CloseMenu() {
	s.mu.Lock()
	s.menuOpen = false
	s.mu.Unlock()
}

// NavigateTo handles a same-page anchor click: it closes the menu and
// returns the scroll offset to move to. A click made from the open menu
// uses the menu offset.
func (s *Shell) NavigateTo(elementTop float64, scrolled bool) float64 {
	s.mu.Lock()
	fromMenu := s.menuOpen
	s.menuOpen = false
	s.mu.Unlock()
	return AnchorScrollTarget(elementTop, scrolled, fromMenu)
}
