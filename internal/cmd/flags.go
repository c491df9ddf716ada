package cmd

import (
	"github.com/spf13/cobra"

	"github.com/saturncloud/examplecheck/internal/config"
)

// Flag names.
const (
	flagExamplesDir       = "examples-dir"
	flagSkipImageCheck    = "skip-image-check"
	flagSchemaVersionFile = "schema-version-file"
	flagCatalogDir        = "catalog-dir"
	flagOutput            = "output"
	flagNoThumbnails      = "no-thumbnails"
	flagECRTokenCommand   = "ecr-token-command"
)

// flagKeys maps config keys to the flags that set them directly.
var flagKeys = map[string]string{
	config.KeyExamplesDir:       flagExamplesDir,
	config.KeySkipImageCheck:    flagSkipImageCheck,
	config.KeySchemaVersionFile: flagSchemaVersionFile,
	config.KeyCatalogDir:        flagCatalogDir,
	config.KeyOutput:            flagOutput,
	config.KeyECRTokenCommand:   flagECRTokenCommand,
}

// addCheckFlags registers the flags of a check run. Values are read back
// through the config loader, which applies env and file precedence.
func addCheckFlags(c *cobra.Command) {
	c.Flags().String(flagExamplesDir, "",
		"Directory holding one subdirectory per example (env: EXAMPLECHECK_EXAMPLES_DIR)")
	c.Flags().Bool(flagSkipImageCheck, false,
		"Do not check that recipe images exist on their registries")
	c.Flags().String(flagSchemaVersionFile, "",
		"File holding the recipe schema version (default: RECIPE_SCHEMA_VERSION)")
	c.Flags().String(flagCatalogDir, "",
		"Directory holding the template catalogs (default: <examples-dir>/../.saturn)")
	c.Flags().StringP(flagOutput, "o", "text",
		"Report format: text, json, yaml")
	c.Flags().Bool(flagNoThumbnails, false,
		"Do not probe catalog thumbnail URLs")
	addECRFlag(c)
}

// addECRFlag registers the flag overriding the ECR Public token command.
func addECRFlag(c *cobra.Command) {
	c.Flags().String(flagECRTokenCommand, "",
		"Command printing an Amazon ECR Public token (default: aws ecr-public get-authorization-token ...)")
}
