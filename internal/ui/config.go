// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ui

import (
	"encoding/json"
	"time"
)

// Config carries the layout and timing constants to the browser script. It
// is serialized into a data attribute on the page body.
type Config struct {
	Sections               []string `json:"sections"`
	ScrolledThreshold      float64  `json:"scrolledThreshold"`
	HeaderOffset           float64  `json:"headerOffset"`
	AnchorOffsetScrolled   float64  `json:"anchorOffsetScrolled"`
	AnchorOffsetUnscrolled float64  `json:"anchorOffsetUnscrolled"`
	AnchorOffsetMenu       float64  `json:"anchorOffsetMenu"`
	RevealThreshold        float64  `json:"revealThreshold"`
	RevealBottomMargin     float64  `json:"revealBottomMargin"`
	SuccessBannerMillis    int64    `json:"successBannerMs"`
	ThemeKey               string   `json:"themeKey"`
	IntroText              string   `json:"introText"`
	IntroKeystrokeMillis   int64    `json:"introKeystrokeMs"`
	IntroCursorMillis      int64    `json:"introCursorMs"`
	IntroHoldMillis        int64    `json:"introHoldMs"`
}

// DefaultConfig returns the constants used by the server-side trackers.
func DefaultConfig(successBanner time.Duration) Config {
	return Config{
		Sections:               SectionIDs,
		ScrolledThreshold:      DefaultScrolledThreshold,
		HeaderOffset:           DefaultHeaderOffset,
		AnchorOffsetScrolled:   AnchorOffsetScrolled,
		AnchorOffsetUnscrolled: AnchorOffsetUnscrolled,
		AnchorOffsetMenu:       AnchorOffsetMenu,
		RevealThreshold:        DefaultRevealThreshold,
		RevealBottomMargin:     DefaultRevealBottomMargin,
		SuccessBannerMillis:    successBanner.Milliseconds(),
		ThemeKey:               ThemeKey,
		IntroText:              IntroText,
		IntroKeystrokeMillis:   IntroKeystroke.Milliseconds(),
		IntroCursorMillis:      IntroCursorBlink.Milliseconds(),
		IntroHoldMillis:        IntroHold.Milliseconds(),
	}
}

// JSON returns the config encoded for an HTML attribute.
func (c Config) JSON() string {
	b, err := json.Marshal(c)
	if err != nil {
		return "{}"
	}
	return string(b)
}
