package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vango-dev/pagetree/internal/errors"
	"github.com/vango-dev/pagetree/pkg/router"
	"github.com/vango-dev/pagetree/pkg/routetree"
	"gopkg.in/yaml.v3"
)

// Output formats for `pagetree routes`.
const (
	formatTree = "tree"
	formatJSON = "json"
	formatYAML = "yaml"
)

func routesCmd(flags *globalFlags) *cobra.Command {
	var (
		format string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the navigation tree",
		Long: `Scan the pages and print the resulting navigation tree.

Section routes created for directories without a page are marked
"(section)". Duplicate keys and other questionable inputs are reported
as warnings on stderr; --strict turns them into an error.

Examples:
  pagetree routes
  pagetree routes --format json
  pagetree -C ./widget routes --format yaml --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(cmd, flags.dir, format, strict)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTree, "Output format (tree, json, yaml)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when validation reports findings")

	return cmd
}

func runRoutes(cmd *cobra.Command, dir, format string, strict bool) error {
	if !validFormat(format) {
		return unknownFormat(format)
	}

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

	report := router.Validate(entries, opts...)
	printReport(cmd.ErrOrStderr(), report)
	if strict && !report.OK() {
		return report.Err()
	}

	return renderRoutes(cmd.OutOrStdout(), routetree.Build(entries, opts...), format)
}

func validFormat(format string) bool {
	switch format {
	case formatTree, formatJSON, formatYAML:
		return true
	}
	return false
}

func unknownFormat(format string) error {
	return errors.New("E501").
		WithDetailf("%q is not a known format", format).
		WithSuggestion("Use one of: tree, json, yaml")
}

// renderRoutes writes the tree in the given format.
func renderRoutes(w io.Writer, roots []*routetree.RouteNode, format string) error {
	if roots == nil {
		roots = []*routetree.RouteNode{}
	}

	switch format {
	case formatTree:
		for _, n := range roots {
			fmt.Fprintln(w, routeLine(n))
			printChildren(w, n.Children, "")
		}
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(roots)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(roots); err != nil {
			return err
		}
		return enc.Close()
	default:
		return unknownFormat(format)
	}
}

func printChildren(w io.Writer, nodes []*routetree.RouteNode, indent string) {
	for i, n := range nodes {
		branch, next := "├── ", "│   "
		if i == len(nodes)-1 {
			branch, next = "└── ", "    "
		}
		fmt.Fprintln(w, indent+branch+routeLine(n))
		printChildren(w, n.Children, indent+next)
	}
}

func routeLine(n *routetree.RouteNode) string {
	line := n.Meta.Name + "  " + n.Path
	if n.Synthetic() {
		line += " (section)"
	}
	return line
}

func printReport(w io.Writer, report *router.Report) {
	for _, e := range report.Errors {
		warn(w, "%s", strings.Replace(router.FormatValidationError(e), "ERROR: ", "", 1))
	}
}
