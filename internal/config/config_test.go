package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/saturncloud/examplecheck/internal/errors"
	"github.com/saturncloud/examplecheck/internal/output"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "RECIPE_SCHEMA_VERSION", cfg.SchemaVersionFile)
	assert.Equal(t, []string{"templates-hosted.json", "templates-enterprise.json"}, cfg.Catalogs)
	assert.Equal(t, []string{"_img"}, cfg.AdminDirs)
	assert.True(t, cfg.CheckThumbnails)
	assert.False(t, cfg.SkipImageCheck)
	assert.Equal(t, output.FormatText, cfg.OutputFormat())
	require.NoError(t, func() error {
		cfg.ExamplesDir = "examples"
		return cfg.Validate()
	}())
}

func TestWithDefaults(t *testing.T) {
	t.Run("derives catalog dir from examples dir", func(t *testing.T) {
		cfg, err := (&Config{ExamplesDir: "/repo/examples"}).WithDefaults()
		require.NoError(t, err)
		assert.Equal(t, "/repo/.saturn", cfg.CatalogDir)
		assert.Equal(t, "text", cfg.Output)
	})

	t.Run("keeps explicit catalog dir", func(t *testing.T) {
		cfg, err := (&Config{ExamplesDir: "/repo/examples", CatalogDir: "/elsewhere"}).WithDefaults()
		require.NoError(t, err)
		assert.Equal(t, "/elsewhere", cfg.CatalogDir)
	})

	t.Run("expands home", func(t *testing.T) {
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		cfg, err := (&Config{ExamplesDir: "~/examples"}).WithDefaults()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "examples"), cfg.ExamplesDir)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.ExamplesDir = "examples"
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing examples dir", func(c *Config) { c.ExamplesDir = "" }, KeyExamplesDir},
		{"unknown output", func(c *Config) { c.Output = "xml" }, KeyOutput},
		{"relative schema url", func(c *Config) { c.SchemaBaseURL = "raw.githubusercontent.com/x" }, KeySchemaBaseURL},
		{"instance types without host", func(c *Config) { c.InstanceTypesURL = "https://" }, KeyInstanceTypesURL},
		{"empty ecr command", func(c *Config) { c.ECRTokenCommand = " " }, KeyECRTokenCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrValidation))

			var fieldErrs FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field)
		})
	}

	t.Run("empty ecr command allowed when skipping images", func(t *testing.T) {
		cfg := valid()
		cfg.ECRTokenCommand = ""
		cfg.SkipImageCheck = true
		assert.NoError(t, cfg.Validate())
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"~", home},
		{"~/examples", filepath.Join(home, "examples")},
		{"~other/examples", "~other/examples"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
