package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	oerrors "github.com/saturncloud/examplecheck/internal/errors"
	"github.com/saturncloud/examplecheck/internal/output"
	"github.com/saturncloud/examplecheck/internal/registry"
)

// NewImageCmd creates the image command.
func NewImageCmd(g *GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "image <image-uri>",
		Short: "Check that a single image exists on its registry",
		Long: `Check that a single image tag can be pulled, using the same registry
rules as recipe validation.

Docker Hub and Amazon ECR Public are authenticated automatically; any other
registry is queried anonymously. Exits 0 when the image exists and 5 when it
does not.`,
		Example: `  examplecheck image saturncloud/saturn:2022.01.06
  examplecheck image public.ecr.aws/saturncloud/saturn-python:2022.01.06`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runImage(c, g, args[0])
		},
	}

	addECRFlag(c)

	return c
}

func runImage(c *cobra.Command, g *GlobalConfig, uri string) error {
	cfg, err := loadConfig(c, g)
	if err != nil {
		return fatal("could not load configuration", err)
	}

	img, err := registry.ParseImageURI(uri)
	if err != nil {
		return fatal("invalid image reference", oerrors.WrapCause(oerrors.ErrValidation, err, uri))
	}

	checker := registry.NewChecker(registry.Options{
		Client:          g.Client,
		ECRTokenCommand: cfg.ECRTokenCommand,
	})

	var exists bool
	err = output.RunWithSpinner(c.Context(), func() error {
		var err error
		exists, err = checker.Exists(c.Context(), img)
		return err
	}, output.WithTitle(fmt.Sprintf("Checking %s", img.String())))
	if err != nil {
		return fatal("could not check image", err)
	}

	where := checker.DisplayName(img)
	if !exists {
		output.Error(fmt.Sprintf("image '%s' is not available on %s", img.String(), where))
		return &oerrors.ExitError{Code: oerrors.ExitNotFound, Printed: true}
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(
		fmt.Sprintf("image '%s' is available on %s", output.StyleNoun.Render(img.String()), where)))
	return nil
}
