package cmd

import (
	"github.com/spf13/cobra"

	oerrors "github.com/saturncloud/examplecheck/internal/errors"
	"github.com/saturncloud/examplecheck/internal/output"
	"github.com/saturncloud/examplecheck/internal/pipeline"
	"github.com/saturncloud/examplecheck/internal/report"
)

// runCheck validates the examples repository and writes the report.
// The exit code is the number of problems found.
func runCheck(c *cobra.Command, g *GlobalConfig) error {
	cfg, err := loadConfig(c, g)
	if err != nil {
		return fatal("could not load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return fatal("invalid configuration", err)
	}

	output.Debug("checking examples",
		"examples_dir", cfg.ExamplesDir,
		"catalog_dir", cfg.CatalogDir,
		"skip_image_check", cfg.SkipImageCheck,
	)

	out := c.OutOrStdout()
	res, err := pipeline.Run(c.Context(), pipeline.Options{
		Config: cfg,
		Fs:     g.Fs,
		Client: g.Client,
		Out:    out,
	})
	if err != nil {
		return fatal("check aborted", err)
	}

	if err := report.Write(out, res.Collector, cfg.OutputFormat()); err != nil {
		return fatal("could not write report", err)
	}

	if res.Collector.Len() > 0 {
		return &oerrors.ExitError{Code: res.Collector.ExitCode(), Printed: true}
	}
	return nil
}

// fatal logs err and returns it as an already printed ExitError carrying the
// exit code for its category.
func fatal(msg string, err error) error {
	exitErr := oerrors.NewExitError(err, oerrors.ExitCodeFromError(err))
	exitErr.Printed = true

	output.Error(msg, "reason", oerrors.ExitCodeName(exitErr.Code))
	output.Details(err.Error())
	return exitErr
}
