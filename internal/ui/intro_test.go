// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ui

import (
	"testing"
	"time"

	"github.com/facebookgo/clock"
)

func TestIntro_TypesThenCompletes(t *testing.T) {
	mock := clock.NewMock()
	var completions int
	in := NewIntro(mock, func() { completions++ })
	defer in.Stop()

	in.Start()
	if v := in.View(); v.Text != "" || !v.Cursor || v.Typed {
		t.Fatalf("initial view = %+v", v)
	}

	mock.Add(IntroKeystroke)
	if got := in.View().Text; got != "<" {
		t.Errorf("after one keystroke Text = %q, want %q", got, "<")
	}

	mock.Add(4 * IntroKeystroke)
	if got := in.View().Text; got != "<Hell" {
		t.Errorf("after five keystrokes Text = %q, want %q", got, "<Hell")
	}

	// 15 runes at 100ms each.
	mock.Add(1500*time.Millisecond - 5*IntroKeystroke)
	v := in.View()
	if v.Text != IntroText || !v.Typed || v.Done {
		t.Fatalf("after typing view = %+v", v)
	}

	mock.Add(IntroHold - time.Millisecond)
	if in.View().Done || completions != 0 {
		t.Fatal("completed before the hold elapsed")
	}
	mock.Add(time.Millisecond)
	if !in.View().Done || completions != 1 {
		t.Fatalf("Done = %v, completions = %d; want completion at 2500ms", in.View().Done, completions)
	}

	mock.Add(10 * time.Second)
	if completions != 1 {
		t.Errorf("completions = %d, want exactly 1", completions)
	}
}

func TestIntro_CursorBlinks(t *testing.T) {
	mock := clock.NewMock()
	in := NewIntro(mock, nil)
	defer in.Stop()
	in.Start()

	mock.Add(IntroCursorBlink - time.Millisecond)
	if !in.View().Cursor {
		t.Error("cursor hidden before the first blink")
	}
	mock.Add(time.Millisecond)
	if in.View().Cursor {
		t.Error("cursor still visible at the first blink")
	}
	mock.Add(IntroCursorBlink)
	if !in.View().Cursor {
		t.Error("cursor not restored at the second blink")
	}
}

func TestIntro_StopCancelsTimers(t *testing.T) {
	mock := clock.NewMock()
	var completed bool
	in := NewIntro(mock, func() { completed = true })
	in.Start()

	mock.Add(3 * IntroKeystroke)
	in.Stop()
	mock.Add(10 * time.Second)

	v := in.View()
	if v.Text != "<He" {
		t.Errorf("Text = %q after Stop, want %q", v.Text, "<He")
	}
	if completed || v.Done {
		t.Error("completion fired after Stop")
	}
}

func TestIntro_StartTwiceDoesNotSpeedUp(t *testing.T) {
	mock := clock.NewMock()
	in := NewIntro(mock, nil)
	defer in.Stop()
	in.Start()
	in.Start()

	mock.Add(2 * IntroKeystroke)
	if got := in.View().Text; got != "<H" {
		t.Errorf("Text = %q, want %q", got, "<H")
	}
}

func TestIntro_StopBeforeStart(t *testing.T) {
	in := NewIntro(clock.NewMock(), func() { t.Error("completion fired") })
	in.Stop()
	in.Start()
	if v := in.View(); v.Text != "" || v.Done {
		t.Errorf("view = %+v, want untouched intro", v)
	}
}
