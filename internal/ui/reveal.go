// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ui

import "sync"

// Reveal defaults.
const (
	DefaultRevealThreshold    = 0.2
	DefaultRevealBottomMargin = 50 // Shrinks the viewport bottom edge, in px
)

// RevealState is the per-element reveal state. Revealed is terminal.
type RevealState int

// Reveal states.
const (
	Unrevealed RevealState = iota
	Revealed
)

func (s RevealState) String() string {
	if s == Revealed {
		return "revealed"
	}
	return "unrevealed"
}

// Rect is an element's box relative to the viewport top.
type Rect struct {
	Top    float64
	Height float64
}

// IntersectionRatio returns the visible fraction of r inside a viewport of
// the given height whose bottom edge is pulled up by bottomMargin.
func IntersectionRatio(r Rect, viewportHeight, bottomMargin float64) float64 {
	if r.Height <= 0 {
		return 0
	}
	bottom := viewportHeight - bottomMargin
	visibleTop := max(r.Top, 0)
	visibleBottom := min(r.Top+r.Height, bottom)
	if visibleBottom <= visibleTop {
		return 0
	}
	return (visibleBottom - visibleTop) / r.Height
}

// RevealTracker observes elements independently and reveals each one the
// first time enough of it is visible. Once revealed an element is no longer
// observed and never reverts.
type RevealTracker struct {
	mu           sync.Mutex
	threshold    float64
	bottomMargin float64
	observed     map[string]bool
	revealed     map[string]bool
	onReveal     func(id string)
}

// NewRevealTracker creates a tracker with the given threshold and bottom margin.
func NewRevealTracker(threshold, bottomMargin float64) *RevealTracker {
	return &RevealTracker{
		threshold:    threshold,
		bottomMargin: bottomMargin,
		observed:     make(map[string]bool),
		revealed:     make(map[string]bool),
	}
}

// OnReveal registers a callback fired exactly once per element.
func (t *RevealTracker) OnReveal(fn func(id string)) {
	t.mu.Lock()
	t.onReveal = fn
	t.mu.Unlock()
}

// Observe starts watching id. Already revealed elements are ignored.
func (t *RevealTracker) Observe(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.revealed[id] {
		t.observed[id] = true
	}
}

// Observing reports whether id is still being watched.
func (t *RevealTracker) Observing(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.observed[id]
}

// State returns the reveal state of id.
func (t *RevealTracker) State(id string) RevealState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.revealed[id] {
		return Revealed
	}
	return Unrevealed
}

// OnIntersect handles an intersection update for id and returns its state.
func (t *RevealTracker) OnIntersect(id string, r Rect, viewportHeight float64) RevealState {
	t.mu.Lock()
	if t.revealed[id] {
		t.mu.Unlock()
		return Revealed
	}
	if !t.observed[id] {
		t.mu.Unlock()
		return Unrevealed
	}
	if IntersectionRatio(r, viewportHeight, t.bottomMargin) < t.threshold {
		t.mu.Unlock()
		return Unrevealed
	}
	t.revealed[id] = true
	delete(t.observed, id)
	fn := t.onReveal
	t.mu.Unlock()

	if fn != nil {
		fn(id)
	}
	return Revealed
}
