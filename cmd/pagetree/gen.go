package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vango-dev/pagetree/internal/errors"
	"github.com/vango-dev/pagetree/pkg/routetree"
)

// Manifest is the file written by `pagetree gen`.
type Manifest struct {
	Routes int                    `json:"routes"`
	Pages  int                    `json:"pages"`
	Tree   []*routetree.RouteNode `json:"tree"`
}

func newManifest(roots []*routetree.RouteNode) Manifest {
	if roots == nil {
		roots = []*routetree.RouteNode{}
	}
	return Manifest{
		Routes: routetree.Count(roots),
		Pages:  routetree.Pages(roots),
		Tree:   roots,
	}
}

func genCmd(flags *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write the route manifest",
		Long: `Scan the pages and write the navigation tree as a JSON manifest.

The output is deterministic: running it twice over the same pages
produces identical files.

Examples:
  pagetree gen
  pagetree gen --output dist/routes.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, flags.dir, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default from pagetree.json)")

	return cmd
}

func runGen(cmd *cobra.Command, dir, output string) error {
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	opts, err := cfg.TreeOptions()
	if err != nil {
		return err
	}

	entries, err := scanPages(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	manifest := newManifest(routetree.Build(entries, opts...))

	if output == "" {
		output = cfg.ManifestPath()
	}
	if err := writeManifest(output, manifest); err != nil {
		return err
	}

	success(cmd.OutOrStdout(), "Wrote %d routes (%d pages) to %s", manifest.Routes, manifest.Pages, output)
	return nil
}

func writeManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Newf(errors.CategoryCLI, "creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Newf(errors.CategoryCLI, "writing %s: %v", path, err)
	}
	return nil
}
