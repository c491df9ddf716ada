// Package pipeline runs a complete check of an examples repository.
package pipeline

import (
	"context"
	"io"
	"net/http"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/afero"

	"github.com/saturncloud/examplecheck/internal/catalog"
	"github.com/saturncloud/examplecheck/internal/config"
	oerrors "github.com/saturncloud/examplecheck/internal/errors"
	"github.com/saturncloud/examplecheck/internal/example"
	"github.com/saturncloud/examplecheck/internal/output"
	"github.com/saturncloud/examplecheck/internal/recipe"
	"github.com/saturncloud/examplecheck/internal/registry"
	"github.com/saturncloud/examplecheck/internal/remote"
	"github.com/saturncloud/examplecheck/internal/report"
)

// Options configures a run.
type Options struct {
	Config *config.Config

	// Fs is the filesystem holding the examples (OS filesystem when nil).
	Fs afero.Fs

	// Client is used for every HTTP request (http.DefaultClient when nil).
	Client *http.Client

	// Images overrides the registry checker built from Config.
	// Ignored when Config.SkipImageCheck is set.
	Images recipe.ImageChecker

	// Out receives progress lines.
	Out io.Writer
}

// Result is the outcome of a run that was not aborted.
type Result struct {
	Collector     *report.Collector
	Examples      []string
	SchemaVersion string
}

// Run executes the check.
//
// Phase sequence:
//  1. PREPARE:  read the schema version file
//  2. FETCH:    recipe schema and instance types
//  3. LIST:     example directories
//  4. CATALOGS: template catalogs against the listing
//  5. EXAMPLES: every example directory in order
//
// Any returned error is fatal. Rule violations are in Result.Collector.
func Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	col := report.NewCollector()

	// Phase 1: PREPARE
	version, err := remote.ReadSchemaVersion(fs, cfg.SchemaVersionFile)
	if err != nil {
		return nil, err
	}
	schemaURL := remote.SchemaURL(cfg.SchemaBaseURL, version)
	output.Debug("recipe schema version", "version", version, "url", schemaURL)

	// Phase 2: FETCH
	schema, instanceTypes, err := fetch(ctx, remote.NewFetcher(opts.Client), schemaURL, cfg.InstanceTypesURL)
	if err != nil {
		return nil, err
	}
	output.Debug("instance types loaded", "count", len(instanceTypes))

	// Phase 3: LIST
	if ok, err := afero.DirExists(fs, cfg.ExamplesDir); err != nil {
		return nil, err
	} else if !ok {
		return nil, oerrors.NewNotFoundError(
			"examples directory not found",
			cfg.ExamplesDir,
			"Pass the directory holding one subdirectory per example to --examples-dir.",
		)
	}
	examples, err := example.ListDirs(fs, cfg.ExamplesDir)
	if err != nil {
		return nil, err
	}
	if len(examples) == 0 {
		col.Addf("No directories found under '%s'", cfg.ExamplesDir)
	}

	// Phase 4: CATALOGS
	catalogs := &catalog.Checker{
		Fs:              fs,
		Dir:             cfg.CatalogDir,
		Names:           cfg.Catalogs,
		Client:          opts.Client,
		CheckThumbnails: cfg.CheckThumbnails,
		Out:             out,
	}
	if err := catalogs.CheckAll(ctx, examples, col); err != nil {
		return nil, err
	}

	// Phase 5: EXAMPLES
	validator := &recipe.Validator{
		Schema:           schema,
		InstanceTypes:    instanceTypes,
		InstanceTypesURL: cfg.InstanceTypesURL,
		ExamplesDir:      cfg.ExamplesDir,
		Images:           imageChecker(opts),
		Fs:               fs,
	}
	checker := &example.Checker{
		Fs:        fs,
		Root:      cfg.ExamplesDir,
		AdminDirs: cfg.AdminDirs,
		Recipes:   validator,
		Out:       out,
	}
	for _, name := range examples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := checker.Check(ctx, name, col); err != nil {
			return nil, err
		}
	}

	output.Debug("check finished", "examples", len(examples), "errors", col.Len())
	return &Result{Collector: col, Examples: examples, SchemaVersion: version}, nil
}

func fetch(ctx context.Context, f *remote.Fetcher, schemaURL, instanceTypesURL string) (*jsonschema.Schema, remote.InstanceTypes, error) {
	var (
		schema        *jsonschema.Schema
		instanceTypes remote.InstanceTypes
	)
	err := output.RunWithSpinner(ctx, func() error {
		var err error
		if schema, err = f.FetchSchema(ctx, schemaURL); err != nil {
			return err
		}
		instanceTypes, err = f.FetchInstanceTypes(ctx, instanceTypesURL)
		return err
	}, output.WithTitle("Fetching recipe schema and instance types"))
	if err != nil {
		return nil, nil, err
	}
	return schema, instanceTypes, nil
}

func imageChecker(opts Options) recipe.ImageChecker {
	if opts.Config.SkipImageCheck {
		output.Debug("image availability check disabled")
		return nil
	}
	if opts.Images != nil {
		return opts.Images
	}
	return registry.NewChecker(registry.Options{
		Client:          opts.Client,
		ECRTokenCommand: opts.Config.ECRTokenCommand,
	})
}
