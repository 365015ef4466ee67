package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vango-dev/pagetree/internal/config"
	"github.com/vango-dev/pagetree/internal/errors"
)

func initCmd(flags *globalFlags) *cobra.Command {
	var (
		force    bool
		pagesDir string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create pagetree.json",
		Long: `Write a pagetree.json with default settings to the project directory.

The frame token is never written to the file. Provide it through
BACKEND_API_TOKEN or VITE_BACKEND_API_TOKEN, in the environment or in .env.

Examples:
  pagetree init
  pagetree init --pages web/pages
  pagetree -C ./widget init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags.dir, pagesDir, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing pagetree.json")
	cmd.Flags().StringVar(&pagesDir, "pages", "", "Pages directory (default "+config.DefaultPagesDir+")")

	return cmd
}

func runInit(cmd *cobra.Command, dir, pagesDir string, force bool) error {
	if config.Exists(dir) && !force {
		return errors.Newf(errors.CategoryConfig, "%s already exists in %s", config.ConfigFileName, dir).
			WithSuggestion("Use --force to overwrite it")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	cfg := config.New()
	cfg.Name = filepath.Base(abs)
	if pagesDir != "" {
		cfg.Pages.Dir = pagesDir
	}

	path := filepath.Join(dir, config.ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	success(out, "Created %s", path)
	info(out, "Pages are read from %s", cfg.Pages.Dir)
	info(out, "Set BACKEND_API_TOKEN before running 'pagetree serve'")
	return nil
}
