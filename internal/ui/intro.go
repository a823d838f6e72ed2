// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ui

import (
	"sync"
	"time"

	"github.com/facebookgo/clock"
)

// Loading intro text and timing.
const (
	IntroText        = "<Hello World />"
	IntroKeystroke   = 100 * time.Millisecond
	IntroCursorBlink = 500 * time.Millisecond
	IntroHold        = time.Second
)

// IntroView is a snapshot of the loading intro.
type IntroView struct {
	Text   string
	Cursor bool
	Typed  bool // Full text shown, hold running
	Done   bool
}

// Intro is the typed-text loading screen on the home page. It reveals
// IntroText one rune per keystroke, holds the full text for IntroHold and
// then calls the completion callback once. The cursor blinks until the
// intro completes. Stop clears every pending timer.
type Intro struct {
	mu      sync.Mutex
	clock   clock.Clock
	text    []rune
	shown   int
	cursor  bool
	started bool
	done    bool
	stopped bool
	typing  *clock.Timer
	blink   *clock.Timer
	onDone  func()
}

// NewIntro creates an intro that has not started. A nil clock uses the
// wall clock.
func NewIntro(clk clock.Clock, onDone func()) *Intro {
	if clk == nil {
		clk = clock.New()
	}
	return &Intro{clock: clk, text: []rune(IntroText), cursor: true, onDone: onDone}
}

// Start schedules the first keystroke and the cursor blink. Later calls
// are ignored.
func (in *Intro) Start() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.started || in.stopped {
		return
	}
	in.started = true
	in.typing = in.clock.AfterFunc(IntroKeystroke, in.keystroke)
	in.blink = in.clock.AfterFunc(IntroCursorBlink, in.toggleCursor)
}

// View returns the current intro state.
func (in *Intro) View() IntroView {
	in.mu.Lock()
	defer in.mu.Unlock()
	return IntroView{
		Text:   string(in.text[:in.shown]),
		Cursor: in.cursor,
		Typed:  in.shown == len(in.text),
		Done:   in.done,
	}
}

// Stop cancels the intro. The completion callback never fires afterwards.
func (in *Intro) Stop() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.stopped = true
	if in.typing != nil {
		in.typing.Stop()
	}
	if in.blink != nil {
		in.blink.Stop()
	}
}

func (in *Intro) keystroke() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.stopped {
		return
	}
	in.shown++
	if in.shown < len(in.text) {
		in.typing = in.clock.AfterFunc(IntroKeystroke, in.keystroke)
		return
	}
	in.typing = in.clock.AfterFunc(IntroHold, in.finish)
}

func (in *Intro) toggleCursor() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.stopped || in.done {
		return
	}
	in.cursor = !in.cursor
	in.blink = in.clock.AfterFunc(IntroCursorBlink, in.toggleCursor)
}

func (in *Intro) finish() {
	in.mu.Lock()
	if in.stopped || in.done {
		in.mu.Unlock()
		return
	}
	in.done = true
	if in.blink != nil {
		in.blink.Stop()
	}
	onDone := in.onDone
	in.mu.Unlock()

	if onDone != nil {
		onDone()
	}
}
