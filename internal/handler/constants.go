// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	RouteHome        = "/"
	RouteAbout       = "/about"
	RouteProjects    = "/projects"
	RouteProjectSlug = "/projects/{slug}"
	RouteContact     = "/contact"
	RouteTheme       = "/theme"

	RouteAPIContact = "/api/contact"

	RouteHealth      = "/health"
	RouteHealthLive  = "/health/live"
	RouteHealthReady = "/health/ready"

	RouteRobots      = "/robots.txt"
	RouteSitemap     = "/sitemap.xml"
	RouteSecurityTxt = "/.well-known/security.txt"

	RouteStatic = "/static/*"
)
