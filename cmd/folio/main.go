// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/olegiv/folio/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func versionInfo() *version.Info {
	return &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "folio",
		Short: "Developer portfolio server",
		Long: `folio serves a single-owner developer portfolio: the home page with
skills, projects and experience, a filterable project catalog and a
contact form delivered through an email relay or logged by the server.

Environment Variables:
  FOLIO_SESSION_SECRET     Session encryption key (required, min 32 bytes)
  FOLIO_SERVER_PORT        Server port (default: 8080)
  FOLIO_ENV                Environment: development|production (default: development)
  FOLIO_CATALOG_PATH       YAML catalog overriding the embedded one (optional)
  FOLIO_CONTACT_DELIVERY   Contact strategy: relay|endpoint (default: relay)
  FOLIO_REDIS_URL          Redis URL for distributed caching (optional)`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionInfo().String())
			return err
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}
