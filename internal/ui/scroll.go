// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ui derives transient page state: header chrome, active
// navigation section, one-shot reveals, anchor offsets, theme, menu and
// the loading intro.
// Everything here is pure or an explicit state container, so it can be
// exercised without a browser. The embedded browser script mirrors these
// rules using the values from Config.
package ui

import "sync"

// Default layout constants in CSS pixels.
const (
	DefaultScrolledThreshold = 10
	DefaultHeaderOffset      = 100
	AnchorOffsetScrolled     = 60
	AnchorOffsetUnscrolled   = 90
	AnchorOffsetMenu         = 80
)

// SectionIDs lists the home page sections in document order.
var SectionIDs = []string{"home", "about", "skills", "projects", "experience", "contact"}

// Section is the measured vertical extent of a page section.
type Section struct {
	ID     string
	Top    float64
	Height float64
}

// Contains reports whether y lies in [Top, Top+Height).
func (s Section) Contains(y float64) bool {
	return y >= s.Top && y < s.Top+s.Height
}

// LayoutMetrics is everything DeriveUIState needs to know about the page.
type LayoutMetrics struct {
	Sections          []Section // In document order
	ScrolledThreshold float64
	HeaderOffset      float64
	Previous          string // Active id before this event, kept when nothing matches
}

// DefaultMetrics returns metrics with the default threshold and header offset.
func DefaultMetrics(sections []Section) LayoutMetrics {
	return LayoutMetrics{
		Sections:          sections,
		ScrolledThreshold: DefaultScrolledThreshold,
		HeaderOffset:      DefaultHeaderOffset,
	}
}

// UIState is the scroll-derived header state.
type UIState struct {
	Scrolled      bool
	ActiveSection string
}

// DeriveUIState computes the header state for a scroll offset. It is pure:
// the same inputs always give the same result.
func DeriveUIState(scrollOffset float64, m LayoutMetrics) UIState {
	return UIState{
		Scrolled:      scrollOffset > m.ScrolledThreshold,
		ActiveSection: activeSection(scrollOffset+m.HeaderOffset, m),
	}
}

func activeSection(y float64, m LayoutMetrics) string {
	for _, s := range m.Sections {
		if s.Contains(y) {
			return s.ID
		}
	}
	if m.Previous != "" {
		return m.Previous
	}
	if len(m.Sections) > 0 {
		return m.Sections[0].ID
	}
	return ""
}

// Tracker adapts scroll events to DeriveUIState and notifies subscribers
// only when the derived state changes.
type Tracker struct {
	mu      sync.Mutex
	metrics LayoutMetrics
	state   UIState
	subs    []func(UIState)
}

// NewTracker creates a tracker for the given layout.
func NewTracker(m LayoutMetrics) *Tracker {
	return &Tracker{metrics: m}
}

// Subscribe registers fn for state changes.
func (t *Tracker) Subscribe(fn func(UIState)) {
	t.mu.Lock()
	t.subs = append(t.subs, fn)
	t.mu.Unlock()
}

// Mount computes the initial state so the first render is correct.
func (t *Tracker) Mount(initialOffset float64) UIState {
	return t.update(initialOffset, true)
}

// OnScroll recomputes state for a new offset.
func (t *Tracker) OnScroll(offset float64) UIState {
	return t.update(offset, false)
}

// Relayout replaces the measured sections, e.g. after a resize.
func (t *Tracker) Relayout(sections []Section) {
	t.mu.Lock()
	t.metrics.Sections = sections
	t.mu.Unlock()
}

// State returns the last derived state.
func (t *Tracker) State() UIState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Tracker) update(offset float64, force bool) UIState {
	t.mu.Lock()
	m := t.metrics
	m.Previous = t.state.ActiveSection
	next := DeriveUIState(offset, m)
	changed := force || next != t.state
	t.state = next
	subs := append([]func(UIState){}, t.subs...)
	t.mu.Unlock()

	if changed {
		for _, fn := range subs {
			fn(next)
		}
	}
	return next
}

// AnchorOffset returns the header clearance for an anchor jump. Links in
// the open mobile menu use a fixed offset; header links depend on whether
// the header has collapsed.
func AnchorOffset(scrolled, fromMenu bool) float64 {
	switch {
	case fromMenu:
		return AnchorOffsetMenu
	case scrolled:
		return AnchorOffsetScrolled
	}
	return AnchorOffsetUnscrolled
}

// AnchorScrollTarget returns the scroll offset for jumping to an element
// whose document top is elementTop, clamped at the top of the page.
func AnchorScrollTarget(elementTop float64, scrolled, fromMenu bool) float64 {
	target := elementTop - AnchorOffset(scrolled, fromMenu)
	if target < 0 {
		return 0
	}
	return target
}
