// Package config provides configuration loading and management.
package config

import (
	"path/filepath"

	"github.com/saturncloud/examplecheck/internal/catalog"
	"github.com/saturncloud/examplecheck/internal/example"
	"github.com/saturncloud/examplecheck/internal/output"
	"github.com/saturncloud/examplecheck/internal/registry"
	"github.com/saturncloud/examplecheck/internal/remote"
)

// Config keys. Each key is also readable from EXAMPLECHECK_<KEY>.
const (
	KeyExamplesDir       = "examples_dir"
	KeySkipImageCheck    = "skip_image_check"
	KeySchemaVersionFile = "schema_version_file"
	KeySchemaBaseURL     = "schema_base_url"
	KeyInstanceTypesURL  = "instance_types_url"
	KeyCatalogDir        = "catalog_dir"
	KeyCatalogs          = "catalogs"
	KeyAdminDirs         = "admin_dirs"
	KeyCheckThumbnails   = "check_thumbnails"
	KeyOutput            = "output"
	KeyECRTokenCommand   = "ecr_token_command"
)

// Keys lists every config key in a stable order.
var Keys = []string{
	KeyExamplesDir,
	KeySkipImageCheck,
	KeySchemaVersionFile,
	KeySchemaBaseURL,
	KeyInstanceTypesURL,
	KeyCatalogDir,
	KeyCatalogs,
	KeyAdminDirs,
	KeyCheckThumbnails,
	KeyOutput,
	KeyECRTokenCommand,
}

// Config represents the examplecheck configuration.
type Config struct {
	// ExamplesDir is the directory holding one subdirectory per example.
	// Required.
	ExamplesDir string `mapstructure:"examples_dir" json:"examples_dir"`

	// SkipImageCheck disables the registry availability check.
	SkipImageCheck bool `mapstructure:"skip_image_check" json:"skip_image_check"`

	// SchemaVersionFile holds the recipe schema version, relative to the
	// working directory. Default: RECIPE_SCHEMA_VERSION
	SchemaVersionFile string `mapstructure:"schema_version_file" json:"schema_version_file"`

	SchemaBaseURL    string `mapstructure:"schema_base_url" json:"schema_base_url"`
	InstanceTypesURL string `mapstructure:"instance_types_url" json:"instance_types_url"`

	// CatalogDir holds the template catalogs.
	// Default: <examples_dir>/../.saturn
	CatalogDir string `mapstructure:"catalog_dir" json:"catalog_dir"`

	Catalogs  []string `mapstructure:"catalogs" json:"catalogs"`
	AdminDirs []string `mapstructure:"admin_dirs" json:"admin_dirs"`

	// CheckThumbnails probes every catalog thumbnail URL. Default: true
	CheckThumbnails bool `mapstructure:"check_thumbnails" json:"check_thumbnails"`

	// Output is the report format: text, json or yaml.
	Output string `mapstructure:"output" json:"output"`

	// ECRTokenCommand prints an Amazon ECR Public token on stdout.
	ECRTokenCommand string `mapstructure:"ecr_token_command" json:"ecr_token_command"`
}

// Defaults returns the built-in value of every key that has one.
func Defaults() map[string]any {
	return map[string]any{
		KeySkipImageCheck:    false,
		KeySchemaVersionFile: remote.DefaultSchemaVersionFile,
		KeySchemaBaseURL:     remote.DefaultSchemaBaseURL,
		KeyInstanceTypesURL:  remote.DefaultInstanceTypesURL,
		KeyCatalogs:          catalog.DefaultNames,
		KeyAdminDirs:         example.DefaultAdminDirs,
		KeyCheckThumbnails:   true,
		KeyOutput:            string(output.FormatText),
		KeyECRTokenCommand:   registry.DefaultECRTokenCommand,
	}
}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	return &Config{
		SchemaVersionFile: remote.DefaultSchemaVersionFile,
		SchemaBaseURL:     remote.DefaultSchemaBaseURL,
		InstanceTypesURL:  remote.DefaultInstanceTypesURL,
		Catalogs:          append([]string(nil), catalog.DefaultNames...),
		AdminDirs:         append([]string(nil), example.DefaultAdminDirs...),
		CheckThumbnails:   true,
		Output:            string(output.FormatText),
		ECRTokenCommand:   registry.DefaultECRTokenCommand,
	}
}

// WithDefaults fills derived values and expands ~ in paths.
func (c *Config) WithDefaults() (*Config, error) {
	out := *c

	var err error
	if out.ExamplesDir, err = ExpandPath(out.ExamplesDir); err != nil {
		return nil, err
	}
	if out.SchemaVersionFile, err = ExpandPath(out.SchemaVersionFile); err != nil {
		return nil, err
	}
	if out.CatalogDir, err = ExpandPath(out.CatalogDir); err != nil {
		return nil, err
	}

	if out.CatalogDir == "" && out.ExamplesDir != "" {
		out.CatalogDir = DefaultCatalogDir(out.ExamplesDir)
	}
	if out.Output == "" {
		out.Output = string(output.FormatText)
	}
	return &out, nil
}

// DefaultCatalogDir returns the catalog directory for an examples directory:
// the .saturn directory next to it.
func DefaultCatalogDir(examplesDir string) string {
	return filepath.Join(examplesDir, "..", ".saturn")
}

// OutputFormat returns the parsed report format.
func (c *Config) OutputFormat() output.OutputFormat {
	return output.ParseOutputFormat(c.Output)
}
