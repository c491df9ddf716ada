package cmd

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/saturncloud/examplecheck/internal/catalog"
	"github.com/saturncloud/examplecheck/internal/example"
	"github.com/saturncloud/examplecheck/internal/output"
)

// NewTemplatesCmd creates the templates command.
func NewTemplatesCmd(g *GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "templates",
		Short: "List the template catalog entries",
		Long: `List every entry of the configured template catalogs with the example
directory it references. Entries pointing at a directory that does not exist
under --examples-dir are marked as missing.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runTemplates(c, g)
		},
	}

	c.Flags().String(flagExamplesDir, "",
		"Directory holding one subdirectory per example (env: EXAMPLECHECK_EXAMPLES_DIR)")
	c.Flags().String(flagCatalogDir, "",
		"Directory holding the template catalogs (default: <examples-dir>/../.saturn)")

	return c
}

func runTemplates(c *cobra.Command, g *GlobalConfig) error {
	cfg, err := loadConfig(c, g)
	if err != nil {
		return fatal("could not load configuration", err)
	}
	if cfg.CatalogDir == "" {
		return fatal("no catalog directory", fmt.Errorf("set --examples-dir or --catalog-dir"))
	}

	var examples []string
	if cfg.ExamplesDir != "" {
		if examples, err = example.ListDirs(g.Fs, cfg.ExamplesDir); err != nil {
			return fatal("could not list examples", err)
		}
	}

	tbl := output.NewTable("CATALOG", "WEIGHT", "TITLE", "EXAMPLE")
	for _, name := range cfg.Catalogs {
		cat, err := catalog.Load(g.Fs, filepath.Join(cfg.CatalogDir, name))
		if err != nil {
			return fatal("could not load catalog", err)
		}
		for _, t := range cat.Templates {
			ex := t.Example()
			if examples != nil && !slices.Contains(examples, ex) {
				tbl.FlaggedRow(name, t.Weight.String(), t.Title, ex+" (missing)")
				continue
			}
			tbl.Row(name, t.Weight.String(), t.Title, ex)
		}
	}

	_, err = fmt.Fprintln(c.OutOrStdout(), tbl.String())
	return err
}
