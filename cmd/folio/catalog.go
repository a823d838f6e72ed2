// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/olegiv/folio/internal/catalog"
)

func newCatalogCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the portfolio catalog",
	}
	cmd.PersistentFlags().StringVar(&file, "file", "", "catalog YAML file (default: embedded catalog)")

	cmd.AddCommand(newCatalogValidateCmd(&file))
	cmd.AddCommand(newCatalogProjectsCmd(&file))

	return cmd
}

func newCatalogValidateCmd(file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog for invalid or duplicate entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadCatalog(*file)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "catalog ok: %d projects, %d skills, %d experiences\n",
				len(c.Projects), len(c.Skills), len(c.Experiences))
			return err
		},
	}
}

func newCatalogProjectsCmd(file *string) *cobra.Command {
	var (
		filter string
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects, optionally filtered by technology",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadCatalog(*file)
			if err != nil {
				return err
			}
			projects := catalog.FilterProjects(c.Projects, filter, limit)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(projects)
			}
			return printProjects(cmd.OutOrStdout(), projects)
		},
	}
	cmd.Flags().StringVar(&filter, "filter", catalog.FilterAll, "technology tag, case-insensitive")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of projects (0 for no limit)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func loadCatalog(file string) (*catalog.Catalog, error) {
	if file == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(file)
}

func printProjects(w io.Writer, projects []catalog.Project) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSLUG\tTITLE\tTECH")
	for _, p := range projects {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Slug, p.Title, strings.Join(p.Tech, ", "))
	}
	return tw.Flush()
}
