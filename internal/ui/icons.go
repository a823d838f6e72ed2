// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ui

import "strings"

// IconKey names an icon in the closed icon set.
type IconKey string

// Skill and tool icons.
const (
	IconNextJS     IconKey = "nextdotjs"
	IconReact      IconKey = "react"
	IconTypeScript IconKey = "typescript"
	IconJavaScript IconKey = "javascript"
	IconNodeJS     IconKey = "nodedotjs"
	IconExpress    IconKey = "express"
	IconRedux      IconKey = "redux"
	IconTailwind   IconKey = "tailwindcss"
	IconMongoDB    IconKey = "mongodb"
	IconPostgreSQL IconKey = "postgresql"
	IconPrisma     IconKey = "prisma"
	IconElementor  IconKey = "elementor"
	IconGit        IconKey = "git"
	IconDocker     IconKey = "docker"
	IconVercel     IconKey = "vercel"
	IconEthereum   IconKey = "ethereum"
	IconOpenAI     IconKey = "openai"
)

// Value, social and generic icons.
const (
	IconCode          IconKey = "code"
	IconZap           IconKey = "zap"
	IconAccessibility IconKey = "accessibility"
	IconSparkles      IconKey = "sparkles"
	IconGitHub        IconKey = "github"
	IconLinkedIn      IconKey = "linkedin"
	IconTwitter       IconKey = "twitter"
	IconMail          IconKey = "mail"
)

// Icon is how a key renders: a sprite symbol, an accessible label and a
// brand color.
type Icon struct {
	Key    IconKey
	Symbol string // Fragment id in the static icon sprite
	Label  string
	Color  string
}

// FallbackIcon is returned for keys outside the set.
var FallbackIcon = Icon{Key: IconCode, Symbol: "code", Label: "Code", Color: "#0284C7"}

var icons = map[IconKey]Icon{
	IconNextJS:        {Symbol: "nextjs", Label: "Next.js", Color: "#000000"},
	IconReact:         {Symbol: "react", Label: "React", Color: "#61DAFB"},
	IconTypeScript:    {Symbol: "typescript", Label: "TypeScript", Color: "#3178C6"},
	IconJavaScript:    {Symbol: "javascript", Label: "JavaScript", Color: "#F7DF1E"},
	IconNodeJS:        {Symbol: "nodejs", Label: "Node.js", Color: "#5FA04E"},
	IconExpress:       {Symbol: "express", Label: "Express", Color: "#000000"},
	IconRedux:         {Symbol: "redux", Label: "Redux", Color: "#764ABC"},
	IconTailwind:      {Symbol: "tailwind", Label: "Tailwind CSS", Color: "#06B6D4"},
	IconMongoDB:       {Symbol: "mongodb", Label: "MongoDB", Color: "#47A248"},
	IconPostgreSQL:    {Symbol: "postgresql", Label: "PostgreSQL", Color: "#4169E1"},
	IconPrisma:        {Symbol: "prisma", Label: "Prisma", Color: "#2D3748"},
	IconElementor:     {Symbol: "elementor", Label: "Elementor", Color: "#92003B"},
	IconGit:           {Symbol: "git", Label: "Git", Color: "#F05032"},
	IconDocker:        {Symbol: "docker", Label: "Docker", Color: "#2496ED"},
	IconVercel:        {Symbol: "vercel", Label: "Vercel", Color: "#000000"},
	IconEthereum:      {Symbol: "ethereum", Label: "Ethereum", Color: "#3C3C3D"},
	IconOpenAI:        {Symbol: "brain", Label: "OpenAI", Color: "#412991"},
	IconCode:          {Symbol: "code", Label: "Code", Color: "#0284C7"},
	IconZap:           {Symbol: "zap", Label: "Performance", Color: "#0284C7"},
	IconAccessibility: {Symbol: "accessibility", Label: "Accessibility", Color: "#0284C7"},
	IconSparkles:      {Symbol: "sparkles", Label: "Sparkles", Color: "#0284C7"},
	IconGitHub:        {Symbol: "github", Label: "GitHub", Color: "#181717"},
	IconLinkedIn:      {Symbol: "linkedin", Label: "LinkedIn", Color: "#0A66C2"},
	IconTwitter:       {Symbol: "twitter", Label: "Twitter", Color: "#1DA1F2"},
	IconMail:          {Symbol: "mail", Label: "Email", Color: "#0284C7"},
}

func init() {
	for k, ic := range icons {
		ic.Key = k
		icons[k] = ic
	}
}

// LookupIcon returns the icon for key, ignoring case and surrounding
// whitespace. Unknown keys get FallbackIcon and ok is false.
func LookupIcon(key string) (icon Icon, ok bool) {
	ic, ok := icons[IconKey(strings.ToLower(strings.TrimSpace(key)))]
	if !ok {
		return FallbackIcon, false
	}
	return ic, true
}

// IconFor is LookupIcon without the ok flag, for templates.
func IconFor(key string) Icon {
	ic, _ := LookupIcon(key)
	return ic
}

// IconKeys returns every key in the set.
func IconKeys() []IconKey {
	keys := make([]IconKey, 0, len(icons))
	for k := range icons {
		keys = append(keys, k)
	}
	return keys
}
